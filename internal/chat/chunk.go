package chat

import "unicode"

// chunkReply splits a reply into word-sized chunks for simulated streaming.
// Each chunk carries its trailing whitespace and leading whitespace sticks to
// the first chunk, so concatenating all chunks reproduces the reply exactly.
func chunkReply(reply string) []string {
	if reply == "" {
		return nil
	}

	var chunks []string
	start := 0
	sawToken := false
	pendingSplit := false

	for i, r := range reply {
		if unicode.IsSpace(r) {
			if sawToken {
				pendingSplit = true
			}
			continue
		}
		if pendingSplit {
			chunks = append(chunks, reply[start:i])
			start = i
			pendingSplit = false
		}
		sawToken = true
	}

	return append(chunks, reply[start:])
}
