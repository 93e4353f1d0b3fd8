package libdiff

const (
	DeleteMark = "-"
	InsertMark = "+"
	EqualMark  = " "
)
