package cache

// Nop never stores anything. Useful as a baseline and to disable caching.
type Nop struct{}

func (Nop) Get(string) (any, bool) { return nil, false }
func (Nop) Put(string, any)       {}
func (Nop) Delete(string)         {}

func NewNop() *Nop {
	return &Nop{}
}

var _ Cache = (*Nop)(nil)
