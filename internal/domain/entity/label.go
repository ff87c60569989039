package entity

// BBoxLabel is one user-submitted bounding-box annotation for an
// archived camera image. Coordinates are passed through to the
// database verbatim; range and type checks are left to the dataset
// consumers.
type BBoxLabel struct {
	ImageName     string
	MinX          string
	MinY          string
	MaxX          string
	MaxY          string
	InsertionTime int64
	UserID        string
	Notes         string
}
