package cache

import (
	"encoding/binary"

	"github.com/pkg/errors"

	"github.com/omniscale/osmview/element"
)

const coordFactor float64 = 11930464.7083 // ((2<<31)-1)/360.0

func coordToInt(coord float64) uint32 {
	return uint32((coord + 180.0) * coordFactor)
}

func intToCoord(coord uint32) float64 {
	return float64(coord)/coordFactor - 180.0
}

// marshalNode encodes position and tags as varints. The id is the store
// key and not repeated in the value.
func marshalNode(node element.Node) []byte {
	buf := make([]byte, 0, 2*binary.MaxVarintLen32+16)
	var tmp [binary.MaxVarintLen64]byte

	n := binary.PutUvarint(tmp[:], uint64(coordToInt(node.Long)))
	buf = append(buf, tmp[:n]...)
	n = binary.PutUvarint(tmp[:], uint64(coordToInt(node.Lat)))
	buf = append(buf, tmp[:n]...)

	n = binary.PutUvarint(tmp[:], uint64(len(node.Tags)))
	buf = append(buf, tmp[:n]...)
	for k, v := range node.Tags {
		n = binary.PutUvarint(tmp[:], uint64(len(k)))
		buf = append(buf, tmp[:n]...)
		buf = append(buf, k...)
		n = binary.PutUvarint(tmp[:], uint64(len(v)))
		buf = append(buf, tmp[:n]...)
		buf = append(buf, v...)
	}
	return buf
}

func unmarshalNode(id int64, data []byte) (element.Node, error) {
	node := element.Node{OSMElem: element.OSMElem{Id: id}}

	long, n := binary.Uvarint(data)
	if n <= 0 {
		return node, errors.New("decoding node longitude")
	}
	data = data[n:]
	lat, n := binary.Uvarint(data)
	if n <= 0 {
		return node, errors.New("decoding node latitude")
	}
	data = data[n:]
	node.Long = intToCoord(uint32(long))
	node.Lat = intToCoord(uint32(lat))

	nTags, n := binary.Uvarint(data)
	if n <= 0 {
		return node, errors.New("decoding node tag count")
	}
	data = data[n:]
	if nTags == 0 {
		return node, nil
	}
	node.Tags = make(element.Tags, nTags)
	for i := uint64(0); i < nTags; i++ {
		key, rest, err := readString(data)
		if err != nil {
			return node, err
		}
		value, rest, err := readString(rest)
		if err != nil {
			return node, err
		}
		node.Tags[key] = value
		data = rest
	}
	return node, nil
}

func readString(data []byte) (string, []byte, error) {
	length, n := binary.Uvarint(data)
	if n <= 0 || uint64(len(data)-n) < length {
		return "", nil, errors.New("decoding node tag string")
	}
	return string(data[n : n+int(length)]), data[n+int(length):], nil
}
