// This file is part of intcode - https://github.com/db47h/intcode
//
// Copyright 2016 Denis Bernard <db047h@gmail.com>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"github.com/btcsuite/btclog"
	"github.com/db47h/intcode/sched"
	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
)

var log = btclog.Disabled

// setupLogging creates the MAIN, VM and SCHD loggers on backend and hands them
// to the vm and sched packages.
func setupLogging(backend *btclog.Backend, level string, trace bool) error {
	lvl, ok := btclog.LevelFromString(level)
	if !ok {
		return errors.Errorf("invalid log level %q", level)
	}
	log = backend.Logger("MAIN")
	vmLog := backend.Logger("VM")
	schedLog := backend.Logger("SCHD")
	for _, l := range []btclog.Logger{log, vmLog, schedLog} {
		l.SetLevel(lvl)
	}
	if trace && lvl > btclog.LevelTrace {
		vmLog.SetLevel(btclog.LevelTrace)
	}
	vm.UseLogger(vmLog)
	sched.UseLogger(schedLog)
	return nil
}
