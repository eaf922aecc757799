package models

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"github.com/iancoleman/orderedmap"
)

// FromInterface converts a generic decoded JSON tree into a Value.
//
// Ordered maps keep their key order. Plain Go maps have none, so their keys are
// sorted to keep the result deterministic.
func FromInterface(v interface{}) (Value, error) {
	switch converted := v.(type) {
	case nil:
		return Null(), nil
	case bool:
		return Bool(converted), nil
	case float64:
		return Number(converted), nil
	case float32:
		return Number(float64(converted)), nil
	case int:
		return Number(float64(converted)), nil
	case int64:
		return Number(float64(converted)), nil
	case json.Number:
		f, err := strconv.ParseFloat(string(converted), 64)
		if err != nil {
			return Value{}, fmt.Errorf("invalid number %q: %w", converted, err)
		}
		return NumberText(f, string(converted)), nil
	case string:
		return String(converted), nil
	case []interface{}:
		items := make([]Value, 0, len(converted))
		for i, elem := range converted {
			item, err := FromInterface(elem)
			if err != nil {
				return Value{}, fmt.Errorf("error processing array element %d: %w", i, err)
			}
			items = append(items, item)
		}
		return Array(items...), nil
	case orderedmap.OrderedMap:
		return fromOrderedMap(&converted)
	case *orderedmap.OrderedMap:
		if converted == nil {
			return Null(), nil
		}
		return fromOrderedMap(converted)
	case map[string]interface{}:
		keys := make([]string, 0, len(converted))
		for key := range converted {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		members := make([]Member, 0, len(keys))
		for _, key := range keys {
			val, err := FromInterface(converted[key])
			if err != nil {
				return Value{}, fmt.Errorf("error processing value for key %q: %w", key, err)
			}
			members = append(members, Member{Key: key, Value: val})
		}
		return Object(members...), nil
	default:
		return Value{}, fmt.Errorf("unrecognized JSON value type %T", v)
	}
}

func fromOrderedMap(om *orderedmap.OrderedMap) (Value, error) {
	keys := om.Keys()
	members := make([]Member, 0, len(keys))
	for _, key := range keys {
		raw, _ := om.Get(key)
		val, err := FromInterface(raw)
		if err != nil {
			return Value{}, fmt.Errorf("error processing value for key %q: %w", key, err)
		}
		members = append(members, Member{Key: key, Value: val})
	}
	return Object(members...), nil
}
