// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwsim

import (
	"reflect"
	"strings"

	"github.com/pkg/errors"
)

// Updater is the interface that custom components built using reflection must implement.
// See MakePart.
type Updater interface {
	Update(c *Circuit)
}

// pinField describes a struct field holding a pin number or a bus of pin
// numbers.
type pinField struct {
	index int    // field index
	name  string // pin or bus name
	bus   int    // bus size, 0 for single pins
	input bool
}

// MakePart wraps an Updater into a custom component.
// Input/output pins are identified by field tags.
//
// The field tag must be `hw:"in"` or `hw:"out"` to identify input and output
// pins. By default, the pin name is the field name in lowercase. A specific
// pin name can be forced by adding it in the tag: `hw:"in,pin_name"`.
//
// Pin fields must be of type int, buses arrays of int. When mounted, these
// fields are set to the pin numbers assigned to the part.
//
// Every mounted instance starts as a copy of proto (unless proto is a nil
// pointer) with its pin fields set. Untagged fields can therefore be used to
// configure the part. Fields of reference types (slices, maps) are shared
// between instances unless the Update method allocates them lazily.
func MakePart(proto Updater) *PartSpec {
	typ := reflect.TypeOf(proto)
	if typ.Kind() == reflect.Ptr {
		typ = typ.Elem()
	}
	if k := typ.Kind(); k != reflect.Struct {
		panic(errors.Errorf("unsupported type %q for %q", k, typ.Name()))
	}

	pins := pinFields(typ)
	sp := &PartSpec{Name: typ.Name()}
	for _, f := range pins {
		names := []string{f.name}
		if f.bus > 0 {
			names = make([]string, f.bus)
			for i := range names {
				names[i] = BusPinName(f.name, i)
			}
		}
		if f.input {
			sp.Inputs = append(sp.Inputs, names...)
		} else {
			sp.Outputs = append(sp.Outputs, names...)
		}
	}

	pv := reflect.ValueOf(proto)
	sp.Mount = func(s *Socket) []Component {
		v := reflect.New(typ)
		e := v.Elem()
		switch {
		case pv.Kind() == reflect.Struct:
			e.Set(pv)
		case !pv.IsNil():
			e.Set(pv.Elem())
		}
		for _, f := range pins {
			fv := e.Field(f.index)
			if f.bus == 0 {
				fv.SetInt(int64(s.Pin(f.name)))
				continue
			}
			for i := 0; i < f.bus; i++ {
				fv.Index(i).SetInt(int64(s.Pin(BusPinName(f.name, i))))
			}
		}
		u := v.Interface().(Updater)
		return []Component{u.Update}
	}
	return sp
}

func pinFields(typ reflect.Type) []pinField {
	var pins []pinField
	for i := 0; i < typ.NumField(); i++ {
		f := typ.Field(i)
		tag, ok := f.Tag.Lookup("hw")
		if !ok {
			continue
		}
		pf := pinField{index: i, name: strings.ToLower(f.Name)}
		tv := strings.Split(tag, ",")
		if len(tv) > 2 {
			panic(errors.Errorf("unsupported tag %q for field %q in %q", tag, f.Name, typ.Name()))
		}
		if len(tv) == 2 && tv[1] != "" {
			pf.name = tv[1]
		}
		switch tv[0] {
		case "in":
			pf.input = true
		case "out":
		default:
			panic(errors.Errorf("unsupported tag %q for field %q in %q", tag, f.Name, typ.Name()))
		}

		ft := f.Type
		switch k := ft.Kind(); {
		case k == reflect.Array && ft.Elem().Kind() == reflect.Int:
			pf.bus = ft.Len()
		case k == reflect.Int:
		default:
			panic(errors.Errorf("unsupported type %q for field %q in %q", k, f.Name, typ.Name()))
		}
		if f.PkgPath != "" {
			panic(errors.Errorf("pin field %q in %q must be exported", f.Name, typ.Name()))
		}
		pins = append(pins, pf)
	}
	return pins
}
