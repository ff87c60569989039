package port

import "context"

type EventPublisher interface {
	PublishExtractionCompleted(ctx context.Context, msg []byte) error
}
