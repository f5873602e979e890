// Package osm parses OSM XML documents into raw, unresolved elements.
package osm

import (
	"compress/gzip"
	"encoding/xml"
	"io"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// Document is one parsed OSM file. Attributes are kept as strings,
// numeric parsing and reference resolution happen during extraction.
type Document struct {
	XMLName    xml.Name    `xml:"osm"`
	Generator  string      `xml:"generator,attr"`
	Changesets []Changeset `xml:"changeset"`
	Nodes      []Node      `xml:"node"`
	Ways       []Way       `xml:"way"`
	Relations  []Relation  `xml:"relation"`
}

type Changeset struct {
	Id         string  `xml:"id,attr"`
	CreatedAt  IsoTime `xml:"created_at,attr"`
	ClosedAt   IsoTime `xml:"closed_at,attr"`
	Open       bool    `xml:"open,attr"`
	User       string  `xml:"user,attr"`
	UserId     int     `xml:"uid,attr"`
	NumChanges int     `xml:"num_changes,attr"`
	MinLat     string  `xml:"min_lat,attr"`
	MinLon     string  `xml:"min_lon,attr"`
	MaxLat     string  `xml:"max_lat,attr"`
	MaxLon     string  `xml:"max_lon,attr"`
	Tags       []Tag   `xml:"tag"`
}

type Node struct {
	Id   string `xml:"id,attr"`
	Lat  string `xml:"lat,attr"`
	Lon  string `xml:"lon,attr"`
	Tags []Tag  `xml:"tag"`
}

type Way struct {
	Id   string `xml:"id,attr"`
	Refs []Ref  `xml:"nd"`
	Tags []Tag  `xml:"tag"`
}

type Ref struct {
	Ref string `xml:"ref,attr"`
}

type Relation struct {
	Id      string   `xml:"id,attr"`
	Members []Member `xml:"member"`
	Tags    []Tag    `xml:"tag"`
}

type Member struct {
	Type string `xml:"type,attr"`
	Ref  string `xml:"ref,attr"`
	Role string `xml:"role,attr"`
}

type Tag struct {
	Key   string `xml:"k,attr"`
	Value string `xml:"v,attr"`
}

type IsoTime struct {
	time.Time
}

func (t *IsoTime) UnmarshalXMLAttr(attr xml.Attr) error {
	if attr.Value == "" {
		return nil
	}
	parsed, err := time.Parse(time.RFC3339, attr.Value)
	if err != nil {
		return err
	}
	*t = IsoTime{parsed}
	return nil
}

func Parse(r io.Reader) (*Document, error) {
	doc := &Document{}
	if err := xml.NewDecoder(r).Decode(doc); err != nil {
		return nil, errors.Wrap(err, "decoding OSM XML")
	}
	return doc, nil
}

// ParseFile parses an .osm file, transparently decompressing .osm.gz.
func ParseFile(filename string) (*Document, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var r io.Reader = file
	if strings.HasSuffix(filename, ".gz") {
		gz, err := gzip.NewReader(file)
		if err != nil {
			return nil, errors.Wrapf(err, "reading gzip %s", filename)
		}
		defer gz.Close()
		r = gz
	}
	return Parse(r)
}
