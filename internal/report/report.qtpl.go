// Code generated by qtc-style hand-authoring; mirrors the shape qtc itself
// emits for a .qtpl template, built on quicktemplate's Writer/ByteBufferPool
// runtime directly since this module has no .qtpl sources to regenerate
// from. DO NOT expect this file to match a real qtc invocation byte for
// byte — it follows the same three-function pattern (Stream/Write/plain)
// qtc generates.
package report

import (
	qtio422016 "io"
	"strconv"

	qt422016 "github.com/valyala/quicktemplate"
)

// StreamGraph writes a text dump of snap to qw422016.
func StreamGraph(qw422016 *qt422016.Writer, snap Snapshot) {
	qw422016.N().S("nodes: ")
	qw422016.N().S(strconv.Itoa(len(snap.Rows)))
	qw422016.N().S("\n")
	for _, row := range snap.Rows {
		qw422016.N().S("  #")
		qw422016.N().S(strconv.FormatUint(row.ID, 10))
		qw422016.N().S(" ")
		qw422016.N().S(row.Kind)
		if row.Name != "" {
			qw422016.N().S(" \"")
			qw422016.E().S(row.Name)
			qw422016.N().S("\"")
		}
		qw422016.N().S(" deps=")
		qw422016.N().S(strconv.Itoa(row.Depends))
		qw422016.N().S(" observers=")
		qw422016.N().S(strconv.Itoa(row.Observers))
		if row.Closed {
			qw422016.N().S(" [closed]")
		}
		qw422016.N().S("\n")
	}
}

// WriteGraph writes a text dump of snap to w.
func WriteGraph(w qtio422016.Writer, snap Snapshot) {
	qw422016 := qt422016.AcquireWriter(w)
	StreamGraph(qw422016, snap)
	qt422016.ReleaseWriter(qw422016)
}

// Graph renders a text dump of snap and returns it as a string.
func Graph(snap Snapshot) string {
	qb422016 := qt422016.AcquireByteBuffer()
	WriteGraph(qb422016, snap)
	qs422016 := string(qb422016.B)
	qt422016.ReleaseByteBuffer(qb422016)
	return qs422016
}
