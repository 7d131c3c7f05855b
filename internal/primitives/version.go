package primitives

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"
)

// Fingerprint hashes the program's canonical JSON form. Equal programs share
// a fingerprint; map ordering does not affect it.
func Fingerprint(config *ProgramConfig) string {
	data, err := json.Marshal(config)
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:8])
}

// ComputeVersion labels a program for logs and snapshots: the user-provided
// Version if set, else the fingerprint plus a UTC build stamp.
func ComputeVersion(config *ProgramConfig) string {
	if config.Version != "" {
		return config.Version
	}
	fp := Fingerprint(config)
	if fp == "" {
		fp = "invalid"
	}
	return fp + "-" + time.Now().UTC().Format("20060102T150405Z")
}
