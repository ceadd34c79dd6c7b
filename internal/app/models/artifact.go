package models

type Artifact struct {
	Ref         string
	ContentType string
	Size        int64
	Data        []byte
}
