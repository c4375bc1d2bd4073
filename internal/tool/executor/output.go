package executor

import "bytes"

const binaryPlaceholder = "[Binary Content]"

// cappedOutput is an io.Writer that keeps at most limit bytes and gives up on
// the stream once a NUL byte shows up within the first sample bytes.
type cappedOutput struct {
	buf       bytes.Buffer
	limit     int
	sample    int
	seen      int
	binary    bool
	truncated bool
}

func newCappedOutput(limit, sample int) *cappedOutput {
	return &cappedOutput{limit: limit, sample: sample}
}

// Write never fails so the process is never blocked on a full pipe.
func (o *cappedOutput) Write(p []byte) (int, error) {
	if o.binary {
		return len(p), nil
	}
	if o.seen == 0 && startsWithWideBOM(p) {
		// UTF-16/32 text legitimately contains NUL bytes.
		o.seen = o.sample
	}
	if o.seen < o.sample {
		head := p[:min(len(p), o.sample-o.seen)]
		if bytes.IndexByte(head, 0) >= 0 {
			o.binary = true
			o.truncated = true
			o.buf.Reset()
			return len(p), nil
		}
		o.seen += len(head)
	}

	room := o.limit - o.buf.Len()
	if room < len(p) {
		o.truncated = true
	}
	if room > 0 {
		o.buf.Write(p[:min(len(p), room)])
	}
	return len(p), nil
}

func (o *cappedOutput) String() string {
	if o.binary {
		return binaryPlaceholder
	}
	return o.buf.String()
}

func startsWithWideBOM(p []byte) bool {
	switch {
	case bytes.HasPrefix(p, []byte{0x00, 0x00, 0xFE, 0xFF}):
		return true
	case bytes.HasPrefix(p, []byte{0xFF, 0xFE}), bytes.HasPrefix(p, []byte{0xFE, 0xFF}):
		return true
	}
	return false
}
