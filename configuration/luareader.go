// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package configuration

import (
	"reflect"

	"github.com/yuin/gluamapper"
	lua "github.com/yuin/gopher-lua"

	"github.com/bitmark-inc/ledgerd/fault"
)

// tag used on configuration structure fields
const tagName = "gluamapper"

// ParseConfigurationFile - read and execute a Lua file and assign
// the returned table to a configuration structure
//
// fields not present in the table keep their existing values so the
// structure can be pre-loaded with defaults
func ParseConfigurationFile(fileName string, config interface{}) error {
	rv := reflect.ValueOf(config)
	if rv.Kind() != reflect.Ptr || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return fault.ErrInvalidStructPointer
	}

	L := lua.NewState()
	defer L.Close()

	L.OpenLibs()

	// arg[0] = config file
	arg := &lua.LTable{}
	arg.Insert(0, lua.LString(fileName))
	L.SetGlobal("arg", arg)

	if err := L.DoFile(fileName); nil != err {
		return err
	}

	table, ok := L.Get(L.GetTop()).(*lua.LTable)
	if !ok {
		return fault.ErrConfigurationNotTable
	}

	mapper := gluamapper.Mapper{
		Option: gluamapper.Option{
			NameFunc: func(s string) string {
				return s
			},
			TagName: tagName,
		},
	}
	return mapper.Map(table, config)
}
