package journey

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"golang.org/x/mod/semver"
)

// FormatVersion is the version written into persisted documents.
const FormatVersion = "v1"

// ErrUnsupportedVersion is returned for documents written by a newer,
// incompatible format.
var ErrUnsupportedVersion = errors.New("unsupported progress format version")

type progressDoc struct {
	Version string   `json:"version"`
	Nodes   Progress `json:"nodes"`
}

type legacyNode struct {
	ID     int    `json:"id"`
	Status Status `json:"status"`
	Stars  int    `json:"stars"`
}

// EncodeProgress serializes p as a versioned document.
func EncodeProgress(p Progress) ([]byte, error) {
	b, err := json.Marshal(progressDoc{Version: FormatVersion, Nodes: p})
	if err != nil {
		return nil, fmt.Errorf("encode progress: %w", err)
	}
	return b, nil
}

// DecodeProgress parses a progress document. An unversioned array of
// {id,status,stars} is accepted and migrated.
func DecodeProgress(b []byte) (Progress, error) {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '[' {
		var legacy []legacyNode
		if err := json.Unmarshal(b, &legacy); err != nil {
			return nil, fmt.Errorf("decode legacy progress: %w", err)
		}
		p := make(Progress, len(legacy))
		for _, n := range legacy {
			p[n.ID] = NodeState{Status: n.Status, Stars: n.Stars}
		}
		return p, nil
	}

	var doc progressDoc
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("decode progress: %w", err)
	}
	if err := checkVersion(doc.Version); err != nil {
		return nil, err
	}
	if doc.Nodes == nil {
		doc.Nodes = Progress{}
	}
	return doc.Nodes, nil
}

type statsDoc struct {
	Version string `json:"version"`
	Stats
	// XPToday is the pre-versioning name for DailyXP.
	XPToday *int `json:"xpToday,omitempty"`
}

// EncodeStats serializes s as a versioned document.
func EncodeStats(s Stats) ([]byte, error) {
	b, err := json.Marshal(statsDoc{Version: FormatVersion, Stats: s})
	if err != nil {
		return nil, fmt.Errorf("encode stats: %w", err)
	}
	return b, nil
}

// DecodeStats parses a stats document. Unversioned documents are read
// with their legacy field names.
func DecodeStats(b []byte) (Stats, error) {
	doc := statsDoc{Stats: DefaultStats()}
	if err := json.Unmarshal(b, &doc); err != nil {
		return Stats{}, fmt.Errorf("decode stats: %w", err)
	}
	if doc.Version == "" {
		if doc.XPToday != nil {
			doc.DailyXP = *doc.XPToday
		}
		return doc.Stats, nil
	}
	if err := checkVersion(doc.Version); err != nil {
		return Stats{}, err
	}
	return doc.Stats, nil
}

func checkVersion(v string) error {
	if v == "" {
		return fmt.Errorf("%w: missing version", ErrUnsupportedVersion)
	}
	if !semver.IsValid(v) || semver.Major(v) != semver.Major(FormatVersion) {
		return fmt.Errorf("%w: %s", ErrUnsupportedVersion, v)
	}
	return nil
}
