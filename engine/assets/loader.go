package assets

import "github.com/spaghettifunk/tangram/engine/renderer/metadata"

// Loader decodes one resource type. Resource.Data holds the decoded value,
// e.g. a *loaders.SceneDescription for ResourceTypeScene.
type Loader interface {
	Load(path string, assetType metadata.ResourceType, params interface{}) (*metadata.Resource, error)
	Unload(*metadata.Resource) error
}
