package metrics

const (
	LabelOrigin = "origin"
)

const (
	OriginLocal  = "local"
	OriginRemote = "remote"
)
