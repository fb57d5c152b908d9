// Copyright (c) 2025 dbt-databricks-metrics
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package keychain stores Databricks workspace credentials in the OS
// credential store (macOS Keychain, Windows Credential Manager, Secret
// Service on Linux). It is a convenience for operators who don't want a
// token sitting in their shell environment or a .databrickscfg file; the
// vendor SDK's ambient configuration always takes precedence.
package keychain

import (
	"errors"
	"strings"

	"github.com/99designs/keyring"
)

// ServiceName identifies our keychain/credential store namespace.
const ServiceName = "dbt-databricks-metrics"

// Keys used for storing secrets in the OS keychain.
const (
	keyHost  = "databricks_host"
	keyToken = "databricks_token"
)

// ErrNotStored is returned by Load when no credentials have been saved.
var ErrNotStored = errors.New("no Databricks credentials stored in keychain")

// Credentials is a workspace host plus a personal access token.
type Credentials struct {
	Host  string
	Token string
}

func openRing() (keyring.Keyring, error) {
	return keyring.Open(keyring.Config{
		ServiceName:              ServiceName,
		KeychainTrustApplication: true,
	})
}

// Save writes the credentials to the OS keychain, replacing any previous ones.
func Save(c Credentials) error {
	ring, err := openRing()
	if err != nil {
		return err
	}
	if err := ring.Set(keyring.Item{Key: keyHost, Data: []byte(c.Host)}); err != nil {
		return err
	}
	return ring.Set(keyring.Item{Key: keyToken, Data: []byte(c.Token)})
}

// Load returns previously saved credentials, or ErrNotStored.
func Load() (Credentials, error) {
	ring, err := openRing()
	if err != nil {
		return Credentials{}, err
	}
	host, err := ring.Get(keyHost)
	if err != nil {
		if errors.Is(err, keyring.ErrKeyNotFound) {
			return Credentials{}, ErrNotStored
		}
		return Credentials{}, err
	}
	token, err := ring.Get(keyToken)
	if err != nil {
		if errors.Is(err, keyring.ErrKeyNotFound) {
			return Credentials{}, ErrNotStored
		}
		return Credentials{}, err
	}
	c := Credentials{
		Host:  strings.TrimSpace(string(host.Data)),
		Token: strings.TrimSpace(string(token.Data)),
	}
	if c.Host == "" || c.Token == "" {
		return Credentials{}, ErrNotStored
	}
	return c, nil
}

// Clear removes any saved credentials. Missing keys are not an error.
func Clear() error {
	ring, err := openRing()
	if err != nil {
		return err
	}
	for _, key := range []string{keyHost, keyToken} {
		if err := ring.Remove(key); err != nil && !errors.Is(err, keyring.ErrKeyNotFound) {
			return err
		}
	}
	return nil
}
