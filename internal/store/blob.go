package store

import (
	"bytes"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/soar/stickprofile/internal/axis"
)

const blobVersion = 1

type blobEntry struct {
	Axis         int         `yaml:"axis"`
	Type         ProfileType `yaml:"type"`
	axis.Profile `yaml:",inline"`
}

type blob struct {
	Version  int         `yaml:"version"`
	Profiles []blobEntry `yaml:"profiles"`
}

// ExportAll encodes every entry, ordered by axis then type.
func (s *Store) ExportAll() ([]byte, error) {
	b := blob{Version: blobVersion}
	for a := 0; a < s.axisCount; a++ {
		for _, t := range s.types {
			b.Profiles = append(b.Profiles, blobEntry{Axis: a, Type: t, Profile: s.profiles[Key{a, t}]})
		}
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&b); err != nil {
		return nil, errors.Wrap(err, "encoding profiles")
	}
	if err := enc.Close(); err != nil {
		return nil, errors.Wrap(err, "encoding profiles")
	}
	return buf.Bytes(), nil
}

// ImportAll replaces the entries present in data. The import is all or
// nothing: one invalid profile rejects the whole blob. Entries for axes or
// types this store does not know are skipped. An empty blob is a no-op.
func (s *Store) ImportAll(data []byte) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}

	var b blob
	if err := yaml.Unmarshal(data, &b); err != nil {
		return errors.Wrapf(ErrMalformedBlob, "%v", err)
	}
	if b.Version != blobVersion {
		return errors.Wrapf(ErrMalformedBlob, "unsupported version %d", b.Version)
	}

	staged := make(map[Key]axis.Profile, len(b.Profiles))
	for _, e := range b.Profiles {
		if err := s.check(e.Axis, e.Type); err != nil {
			logrus.WithFields(logrus.Fields{
				"axis": e.Axis,
				"type": e.Type,
			}).Debugf("skipping stored profile: %v", err)
			continue
		}
		if err := e.Profile.Validate(); err != nil {
			return errors.Wrapf(ErrInvalidProfile, "axis %d %s: %v", e.Axis, e.Type, err)
		}
		staged[Key{e.Axis, e.Type}] = e.Profile
	}

	for k, p := range staged {
		s.profiles[k] = p
	}
	return nil
}
