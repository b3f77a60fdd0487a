package library

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/dpetit12345/classical-fixes/internal/record"
)

var (
	punctuationRe   = regexp.MustCompile(`[^\w\s]`)
	multipleSpaceRe = regexp.MustCompile(`\s+`)
)

// Cluster is a set of records from one directory sharing an album title.
type Cluster struct {
	Dir     string
	Album   string
	Records []record.Record
}

// IDs returns the record IDs of c in order.
func (c Cluster) IDs() []string {
	ids := make([]string, len(c.Records))
	for i, r := range c.Records {
		ids[i] = r.ID
	}
	return ids
}

// ClusterRecords groups records by the directory of their ID and their
// album title, compared case- and punctuation-insensitively. Clusters come
// in order of their first record.
func ClusterRecords(records []record.Record) []Cluster {
	type key struct{ dir, album string }
	index := make(map[key]int)
	var clusters []Cluster
	for _, r := range records {
		k := key{dir: filepath.Dir(r.ID), album: albumKey(r.Album)}
		i, ok := index[k]
		if !ok {
			i = len(clusters)
			index[k] = i
			clusters = append(clusters, Cluster{Dir: k.dir, Album: r.Album})
		}
		clusters[i].Records = append(clusters[i].Records, r)
	}
	return clusters
}

// albumKey normalizes an album title for comparison: lowercase,
// punctuation replaced with spaces, whitespace collapsed.
func albumKey(s string) string {
	s = strings.ToLower(s)
	s = punctuationRe.ReplaceAllString(s, " ")
	s = multipleSpaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
