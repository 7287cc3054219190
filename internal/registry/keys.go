package registry

import (
	"github.com/nfrund/myprofile/internal/backend"
	"github.com/nfrund/myprofile/internal/preview"
	"github.com/nfrund/myprofile/internal/pubsub"
	"github.com/nfrund/myprofile/internal/rendering"
)

// Service keys for dependency injection. Using constants prevents typos.
const (
	BackendClientKey   Key[*backend.Client]    = "core.backend"
	PreviewRegistryKey Key[*preview.Registry]  = "core.previews"
	PublisherKey       Key[pubsub.Publisher]   = "core.publisher"
	SubscriberKey      Key[pubsub.Subscriber]  = "core.subscriber"
	RendererKey        Key[rendering.Renderer] = "core.renderer"
)
