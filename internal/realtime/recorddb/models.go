package recorddb

type Record struct {
	Seq       int64
	Path      string
	ID        string
	Data      string
	UpdatedAt int64
}
