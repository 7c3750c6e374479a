package xnb

import (
	"github.com/sirupsen/logrus"
)

type typeReaderEntry struct {
	identity TypeIdentity
	reader   AnyReader
}

// typeTable is the document-local list of declared type readers. Content
// stream ids index it 1-based; it never changes once read.
type typeTable struct {
	entries []typeReaderEntry
}

func (t *typeTable) len() int {
	if t == nil {
		return 0
	}
	return len(t.entries)
}

// TypeReaderInfo describes one declared type reader of a document.
type TypeReaderInfo struct {
	Identity TypeIdentity `json:"identity"`
	Resolved bool         `json:"resolved"`
}

func readTypeTable(c *Cursor, reg *Registry, limits Limits, log logrus.FieldLogger) (*typeTable, error) {
	start := c.Offset()
	n, err := c.readCount()
	if err != nil {
		return nil, err
	}
	if n > limits.MaxTypeReaders {
		c.pos = start
		return nil, c.errorf(ErrLimitExceeded, "%d type readers, limit %d", n, limits.MaxTypeReaders)
	}
	t := &typeTable{entries: make([]typeReaderEntry, 0, n)}
	for i := 0; i < n; i++ {
		name, err := c.ReadString()
		if err != nil {
			return nil, err
		}
		version, err := c.ReadInt32()
		if err != nil {
			return nil, err
		}
		id := TypeIdentity{Name: name, Version: version}
		rd, ok := reg.Lookup(id)
		if !ok {
			log.WithFields(logrus.Fields{"index": i, "reader": name, "version": version}).Debug("xnb: type reader not registered")
		}
		t.entries = append(t.entries, typeReaderEntry{identity: id, reader: rd})
	}
	return t, nil
}

func (t *typeTable) infos() []TypeReaderInfo {
	out := make([]TypeReaderInfo, len(t.entries))
	for i, e := range t.entries {
		out[i] = TypeReaderInfo{Identity: e.identity, Resolved: e.reader != nil}
	}
	return out
}
