package services

import (
	"fmt"
	"sort"
	"strings"

	"tra-stations/models"
	"tra-stations/utils"
)

// Suffixes appended to a non-key column present on both sides of a join.
const (
	LeftSuffix  = "_x"
	RightSuffix = "_y"
)

// JoinStats counts how keys were matched.
type JoinStats struct {
	Matched      int
	LeftOnly     int
	RightOnly    int
	Duplicates   int
	SkippedNoKey int
}

// Joiner performs a full outer join of two record sets on a key field.
type Joiner struct {
	logger    *utils.Logger
	sortByKey bool
}

// NewJoiner creates a Joiner. With sortByKey the output is ordered by key;
// otherwise left keys come first in input order, then right-only keys.
func NewJoiner(logger *utils.Logger, sortByKey bool) *Joiner {
	return &Joiner{logger: logger, sortByKey: sortByKey}
}

type joinSide struct {
	name    string
	rs      *models.RecordSet
	rename  map[string]string
	records map[string]*models.Record
}

// Join returns one record per distinct key found on either side. Fields of
// a side that has no record for a key are missing.
func (j *Joiner) Join(left, right *models.RecordSet, key string) (*models.RecordSet, JoinStats, error) {
	var stats JoinStats

	if !left.HasColumn(key) {
		return nil, stats, fmt.Errorf("joiner: left table: %w: %q", models.ErrKeyNotFound, key)
	}
	if !right.HasColumn(key) {
		return nil, stats, fmt.Errorf("joiner: right table: %w: %q", models.ErrKeyNotFound, key)
	}

	columns, leftRename, rightRename := joinColumns(left.Columns, right.Columns, key)

	keys := utils.NewKeySet()
	l := &joinSide{name: "left", rs: left, rename: leftRename, records: make(map[string]*models.Record)}
	r := &joinSide{name: "right", rs: right, rename: rightRename, records: make(map[string]*models.Record)}
	for _, side := range []*joinSide{l, r} {
		j.index(side, key, keys, &stats)
	}

	order := keys.Keys()
	if j.sortByKey {
		sort.Strings(order)
	}

	out := models.NewRecordSet(columns)
	out.Records = make([]*models.Record, 0, keys.Size())
	for _, k := range order {
		lr, inLeft := l.records[k]
		rr, inRight := r.records[k]
		switch {
		case inLeft && inRight:
			stats.Matched++
		case inLeft:
			stats.LeftOnly++
		default:
			stats.RightOnly++
		}

		rec := models.NewRecord()
		for _, c := range columns {
			rec.Set(c, models.MissingValue())
		}
		rec.Set(key, models.TextValue(k))
		copyFields(rec, lr, l, key)
		copyFields(rec, rr, r, key)
		out.Records = append(out.Records, rec)
	}

	j.logger.Info("[joiner] Joined %d + %d rows → %d stations (matched %d, %s-only %d, %s-only %d)",
		left.Len(), right.Len(), out.Len(), stats.Matched, l.name, stats.LeftOnly, r.name, stats.RightOnly)
	return out, stats, nil
}

// index records the first row per key of one side.
func (j *Joiner) index(side *joinSide, key string, keys *utils.KeySet, stats *JoinStats) {
	for i, rec := range side.rs.Records {
		k, ok := keyText(rec.Get(key))
		if !ok {
			j.logger.Warn("[joiner] Skipping %s row %d with empty %s", side.name, i+1, key)
			stats.SkippedNoKey++
			continue
		}
		if _, dup := side.records[k]; dup {
			j.logger.Warn("[joiner] Duplicate %s %q in %s table, keeping first occurrence", key, k, side.name)
			stats.Duplicates++
			continue
		}
		side.records[k] = rec
		keys.Add(k)
	}
}

// joinColumns builds the output header: left columns, then right columns
// without the key. Non-key names present on both sides get suffixes.
func joinColumns(left, right []string, key string) ([]string, map[string]string, map[string]string) {
	inLeft := make(map[string]bool, len(left))
	for _, c := range left {
		inLeft[c] = true
	}
	inRight := make(map[string]bool, len(right))
	for _, c := range right {
		inRight[c] = true
	}

	leftRename := make(map[string]string, len(left))
	rightRename := make(map[string]string, len(right))
	columns := make([]string, 0, len(left)+len(right))

	for _, c := range left {
		name := c
		if c != key && inRight[c] {
			name = c + LeftSuffix
		}
		leftRename[c] = name
		columns = append(columns, name)
	}
	for _, c := range right {
		if c == key {
			continue
		}
		name := c
		if inLeft[c] {
			name = c + RightSuffix
		}
		rightRename[c] = name
		columns = append(columns, name)
	}
	return columns, leftRename, rightRename
}

func copyFields(dst, src *models.Record, side *joinSide, key string) {
	if src == nil {
		return
	}
	for _, f := range src.Fields() {
		if f == key {
			continue
		}
		if name, ok := side.rename[f]; ok {
			dst.Set(name, src.Get(f))
		}
	}
}

// keyText returns the trimmed textual form of a key value.
func keyText(v models.Value) (string, bool) {
	if v.IsMissing() {
		return "", false
	}
	k := strings.TrimSpace(v.String())
	return k, k != ""
}
