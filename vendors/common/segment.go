package common

import "regexp"

// Block is the span of command output that belongs to one interface
type Block struct {
	// Name is the interface name as printed (before normalization)
	Name string

	// Key is the normalized name used to merge entries
	Key string

	Text string

	// Notice is true for one-line entries such as "transceiver is absent"
	Notice bool
}

// Segmenter splits command output into per-interface blocks.
//
// Header marks the start of a full block; its first capture group is the
// interface name. Notice, when set, matches one-line entries that are merged
// into the result without overwriting a full block for the same interface.
type Segmenter struct {
	Header     *regexp.Regexp
	Notice     *regexp.Regexp
	Normalizer *Normalizer
}

// Split returns the blocks in output order, full blocks first and notices
// after them. A block runs from its header to the next header, or to the
// first notice line in between. No headers and no notices yields nil.
func (s Segmenter) Split(output string) []Block {
	headers := s.Header.FindAllStringSubmatchIndex(output, -1)

	var notices [][]int
	if s.Notice != nil {
		notices = s.Notice.FindAllStringSubmatchIndex(output, -1)
	}

	var blocks []Block
	seen := make(map[string]bool)

	for i, h := range headers {
		start := h[0]
		end := len(output)
		if i+1 < len(headers) {
			end = headers[i+1][0]
		}
		for _, n := range notices {
			if n[0] > start && n[0] < end {
				end = n[0]
				break
			}
		}

		name := output[h[2]:h[3]]
		key := s.Normalizer.Normalize(name)
		seen[key] = true
		blocks = append(blocks, Block{
			Name: name,
			Key:  key,
			Text: output[start:end],
		})
	}

	for _, n := range notices {
		name := output[n[2]:n[3]]
		key := s.Normalizer.Normalize(name)
		if seen[key] {
			continue
		}
		seen[key] = true
		blocks = append(blocks, Block{
			Name:   name,
			Key:    key,
			Text:   output[n[0]:n[1]],
			Notice: true,
		})
	}

	return blocks
}
