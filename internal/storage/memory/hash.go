package memory

import (
	"github.com/google/btree"

	"github.com/yndnr/respkv/pkg/resp"
)

// Field is one hash entry as returned by HGetAll.
type Field struct {
	Name  string
	Value resp.Frame
}

func lessField(a, b Field) bool { return a.Name < b.Name }

// hash keeps fields ordered by name so HGETALL output is deterministic.
// It is only accessed under the owning shard's lock.
type hash struct {
	tree *btree.BTreeG[Field]
}

func newHash() *hash {
	return &hash{tree: btree.NewG(8, lessField)}
}

func (h *hash) put(name string, value resp.Frame) {
	h.tree.ReplaceOrInsert(Field{Name: name, Value: value})
}

func (h *hash) get(name string) (resp.Frame, bool) {
	f, ok := h.tree.Get(Field{Name: name})
	return f.Value, ok
}

// fields copies the entries out in order. The copy can be used after the
// shard lock is released.
func (h *hash) fields() []Field {
	out := make([]Field, 0, h.tree.Len())
	h.tree.Ascend(func(f Field) bool {
		out = append(out, f)
		return true
	})
	return out
}
