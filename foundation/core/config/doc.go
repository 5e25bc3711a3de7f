// Package config loads argot configuration files.
//
// Package: config
// Title: argot Configuration Management
// Description: Loads TOML or YAML configuration into a nested map with
//              dot-path accessors, environment variable overrides and
//              fsnotify based hot reloading. Files are found with Discover,
//              checked with per-key ValidationRules and bound into tagged
//              structs with BindToStruct.
// Author: msto63
// Version: v0.1.0
// Created: 2025-11-04
// Modified: 2025-11-20
//
// Change History:
// - 2025-11-04 v0.1.0: Initial implementation
// - 2025-11-20 v0.1.0: Discovery, validation rules and struct binding
//
// Usage:
//   cfg, err := config.LoadWithOptions("argot.toml", config.LoadOptions{
//     EnvPrefix: "ARGOT",
//   })
//   prefix := cfg.GetString("lexer.prefix", "!")   // ARGOT_LEXER_PREFIX overrides
//
//   rules := config.ValidationRules{"server.burst": {Type: "int", Min: 1}}
//   if err := cfg.Validate(rules).Err(); err != nil { ... }
//
//   var server struct {
//     Addr  string `config:"addr"`
//     Burst int    `config:"burst"`
//   }
//   err = cfg.BindToStruct("server", &server)
//
//   cfg.OnChange(func(old, new *config.Config) { ... })
//   if err := cfg.Watch(ctx); err != nil { ... }
package config
