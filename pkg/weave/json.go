package weave

import (
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"
)

// ArgumentFromJSON decodes a JSON document into a Value, for hosts that
// want to build call arguments from JSON instead of constructing Values
// by hand. JSON null has no weave equivalent and is rejected; a JSON
// object lowers to a List of (key, value) 2-tuples, since the language
// itself has no map type.
func ArgumentFromJSON(data []byte) (Value, error) {
	if !gjson.ValidBytes(data) {
		return Value{}, fmt.Errorf("weave: invalid JSON")
	}
	return fromGJSON(gjson.ParseBytes(data))
}

func fromGJSON(r gjson.Result) (Value, error) {
	switch r.Type {
	case gjson.False:
		return Bool(false), nil
	case gjson.True:
		return Bool(true), nil
	case gjson.Number:
		if r.Num != float64(int64(r.Num)) {
			return Value{}, fmt.Errorf("weave: JSON number %v is not an integer", r.Num)
		}
		return Int(int32(r.Num)), nil
	case gjson.String:
		return String(r.Str), nil
	case gjson.JSON:
		if r.IsArray() {
			return fromGJSONSeq(r, func(_, v gjson.Result) (Value, error) { return fromGJSON(v) })
		}
		return fromGJSONSeq(r, func(k, v gjson.Result) (Value, error) {
			ev, err := fromGJSON(v)
			if err != nil {
				return Value{}, err
			}
			return Tuple(String(k.String()), ev), nil
		})
	default:
		return Value{}, fmt.Errorf("weave: JSON null has no weave equivalent")
	}
}

func fromGJSONSeq(r gjson.Result, convert func(key, val gjson.Result) (Value, error)) (Value, error) {
	var elems []Value
	var convErr error
	r.ForEach(func(k, v gjson.Result) bool {
		ev, err := convert(k, v)
		if err != nil {
			convErr = err
			return false
		}
		elems = append(elems, ev)
		return true
	})
	if convErr != nil {
		return Value{}, convErr
	}
	return List(elems...), nil
}

// ToJSON renders v as a JSON document. Tuple and List both lower to a
// JSON array (built incrementally with sjson, one element appended at a
// time); a Custom value has no JSON form and is rejected.
func (v Value) ToJSON(prettyPrint bool) (string, error) {
	raw, err := toJSONBytes(v)
	if err != nil {
		return "", err
	}
	if prettyPrint {
		raw = pretty.Pretty(raw)
	}
	return string(raw), nil
}

func toJSONBytes(v Value) ([]byte, error) {
	switch v.kind {
	case KindInt:
		return json.Marshal(v.i)
	case KindString:
		return json.Marshal(v.s)
	case KindBool:
		return json.Marshal(v.b)
	case KindTuple, KindList:
		doc := []byte("[]")
		for _, e := range v.elems {
			raw, err := toJSONBytes(e)
			if err != nil {
				return nil, err
			}
			doc, err = sjson.SetRawBytes(doc, "-1", raw)
			if err != nil {
				return nil, err
			}
		}
		return doc, nil
	default:
		return nil, fmt.Errorf("weave: %s value has no JSON representation", v.kind)
	}
}
