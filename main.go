// Copyright 2026 The Geodash Authors
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
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"geodash/auth"
	"geodash/config"
	"geodash/geodata"
	"geodash/windows"
)

func main() {
	configPath := flag.String("config", "geodash.yaml", "path to the configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log, err := newLogger(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer log.Sync()

	store, err := auth.OpenStore(cfg.UsersDBPath())
	if err != nil {
		log.Fatal("failed to open credential store", zap.Error(err))
	}
	defer store.Close()

	gate := auth.NewGate(store,
		auth.WithTTL(time.Duration(cfg.SessionTTLHours)*time.Hour),
		auth.WithLogger(log))
	loader := geodata.NewLoader(log)

	log.Info("starting dashboard",
		zap.String("data_dir", cfg.DataDir),
		zap.Int("session_ttl_hours", cfg.SessionTTLHours))
	windows.CreateMainWindow(cfg, log, gate, loader)
}

func newLogger(cfg config.Config) (*zap.Logger, error) {
	if cfg.Debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
