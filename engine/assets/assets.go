package assets

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spaghettifunk/tangram/engine/assets/loaders"
	"github.com/spaghettifunk/tangram/engine/core"
	"github.com/spaghettifunk/tangram/engine/renderer/metadata"
)

// changes not drained by the main loop are dropped past this many
const changesBufferSize = 64

var ErrClosed = errors.New("asset manager already closed")

type AssetInfo struct {
	Path       string
	Type       metadata.ResourceType
	LastLoaded time.Time
}

// AssetManager indexes the asset directory and reports scene files that are
// created or written while it runs.
type AssetManager struct {
	assets  map[string]AssetInfo
	loaders map[metadata.ResourceType]Loader

	mutex sync.RWMutex

	done     chan struct{}
	wg       sync.WaitGroup
	fsnotify *fsnotify.Watcher
	isClosed bool
	started  bool
	changes  chan string
}

func NewAssetManager() (*AssetManager, error) {
	fsWatch, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	am := &AssetManager{
		assets:   make(map[string]AssetInfo),
		loaders:  make(map[metadata.ResourceType]Loader),
		fsnotify: fsWatch,
		changes:  make(chan string, changesBufferSize),
		done:     make(chan struct{}),
	}
	// Register loaders
	am.registerLoader(metadata.ResourceTypeScene, &loaders.SceneLoader{})
	return am, nil
}

// Initialize indexes assetsDir and starts watching it and its sub-directories.
func (am *AssetManager) Initialize(assetsDir string) error {
	if err := am.addRecursive(assetsDir); err != nil {
		return err
	}

	am.mutex.Lock()
	am.started = true
	am.mutex.Unlock()

	am.wg.Add(1)
	go am.start()

	core.LogInfo("watching '%s' for asset changes", assetsDir)
	return nil
}

// Changes delivers the paths of asset files created or written since the
// last read. It is closed by Shutdown.
func (am *AssetManager) Changes() <-chan string {
	return am.changes
}

func (am *AssetManager) Shutdown() error {
	am.mutex.Lock()
	if am.isClosed {
		am.mutex.Unlock()
		return ErrClosed
	}
	am.isClosed = true
	started := am.started
	am.mutex.Unlock()

	if !started {
		close(am.changes)
		return am.fsnotify.Close()
	}
	close(am.done)
	am.wg.Wait()
	return nil
}

// AddRecursive starts watching the named directory and all sub-directories.
func (am *AssetManager) addRecursive(name string) error {
	if am.closed() {
		return ErrClosed
	}
	return am.watchRecursive(name)
}

// Register loaders for each asset type
func (am *AssetManager) registerLoader(assetType metadata.ResourceType, loader Loader) {
	am.loaders[assetType] = loader
}

// Lookup returns the index entry of path.
func (am *AssetManager) Lookup(path string) (AssetInfo, bool) {
	am.mutex.RLock()
	defer am.mutex.RUnlock()

	asset, ok := am.assets[filepath.Clean(path)]
	return asset, ok
}

// Load an asset using the appropriate loader. The file does not need to be
// inside the watched directory.
func (am *AssetManager) LoadAsset(path string, resourceType metadata.ResourceType, params interface{}) (*metadata.Resource, error) {
	loader, loaderExists := am.loaders[resourceType]
	if !loaderExists {
		return nil, fmt.Errorf("no loader registered for asset type: %s", resourceType)
	}
	resource, err := loader.Load(path, resourceType, params)
	if err != nil {
		return nil, err
	}

	am.mutex.Lock()
	key := filepath.Clean(path)
	am.assets[key] = AssetInfo{Path: key, Type: resourceType, LastLoaded: time.Now()}
	am.mutex.Unlock()

	return resource, nil
}

func (am *AssetManager) UnloadAsset(asset *metadata.Resource) error {
	loader, loaderExists := am.loaders[asset.Type]
	if !loaderExists {
		return fmt.Errorf("no loader registered for asset type: %s", asset.Type)
	}
	return loader.Unload(asset)
}

// LoadScene reads, decodes and validates a scene description.
func (am *AssetManager) LoadScene(path string) (*loaders.SceneDescription, error) {
	resource, err := am.LoadAsset(path, metadata.ResourceTypeScene, nil)
	if err != nil {
		return nil, err
	}
	return resource.Data.(*loaders.SceneDescription), nil
}

func (am *AssetManager) closed() bool {
	am.mutex.RLock()
	defer am.mutex.RUnlock()
	return am.isClosed
}

func (am *AssetManager) start() {
	defer am.wg.Done()
	for {
		select {

		case e, ok := <-am.fsnotify.Events:
			if !ok {
				return
			}
			s, err := os.Stat(e.Name)
			if err == nil && s != nil && s.IsDir() {
				if e.Op&fsnotify.Create != 0 {
					if err := am.watchRecursive(e.Name); err != nil {
						core.LogWarn("failed to watch new directory '%s': %s", e.Name, err)
					}
				}
				continue
			}
			// Handle create or modify events
			if e.Op&(fsnotify.Create|fsnotify.Write) != 0 {
				if am.handleFileEvent(e.Name) {
					am.notify(e.Name)
				}
			}
			// Can't stat a deleted directory, so just try to remove it from the watch list.
			if e.Op&(fsnotify.Remove|fsnotify.Rename) != 0 {
				am.removeAsset(e.Name)
				_ = am.fsnotify.Remove(e.Name)
			}

		case err, ok := <-am.fsnotify.Errors:
			if !ok {
				return
			}
			core.LogError(err.Error())

		case <-am.done:
			am.fsnotify.Close()
			close(am.changes)
			return
		}
	}
}

func (am *AssetManager) notify(path string) {
	select {
	case am.changes <- filepath.Clean(path):
	default:
		core.LogWarn("asset change queue is full, dropping '%s'", path)
	}
}

// watchRecursive adds all directories under the given one to the watch list
// and indexes the files found.
func (am *AssetManager) watchRecursive(path string) error {
	return filepath.Walk(path, func(walkPath string, fi os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if fi.IsDir() {
			return am.fsnotify.Add(walkPath)
		}
		am.handleFileEvent(walkPath)
		return nil
	})
}

// Handle the creation or modification of a file. It reports whether the
// file is a known asset.
func (am *AssetManager) handleFileEvent(path string) bool {
	assetType := determineAssetType(path)
	if assetType == metadata.ResourceTypeNone {
		return false
	}

	am.mutex.Lock()
	defer am.mutex.Unlock()

	key := filepath.Clean(path)
	am.assets[key] = AssetInfo{
		Path: key,
		Type: assetType,
	}
	return true
}

// Remove the asset from the index if it was deleted
func (am *AssetManager) removeAsset(path string) {
	am.mutex.Lock()
	defer am.mutex.Unlock()

	delete(am.assets, filepath.Clean(path))
}

func determineAssetType(path string) metadata.ResourceType {
	if loaders.SceneFormatFromPath(path) != loaders.SceneFormatUnknown {
		return metadata.ResourceTypeScene
	}
	switch filepath.Ext(path) {
	case ".txt", ".md":
		return metadata.ResourceTypeText
	default:
		return metadata.ResourceTypeNone
	}
}
