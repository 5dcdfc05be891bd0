package assets

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spaghettifunk/anima-obj/engine/assets/loaders"
	"github.com/spaghettifunk/anima-obj/engine/core"
	"github.com/spaghettifunk/anima-obj/engine/renderer/metadata"
	"github.com/spaghettifunk/anima-obj/engine/systems"
)

const jobQueueSize = 64

type AssetInfo struct {
	Path       string
	Type       metadata.ResourceType
	LastLoaded time.Time
}

// ReloadFunc is called after a watched source was reloaded; err is nil on success.
type ReloadFunc func(path string, err error)

type AssetManager struct {
	config   *core.Config
	fetcher  ByteFetcher
	registry *Registry
	jobs     *systems.JobSystem
	ownsJobs bool
	onReload ReloadFunc

	assets  map[string]AssetInfo
	loaders map[string]Loader
	// source path -> every path its last successful load fetched
	dependencies map[string][]string

	mutex sync.RWMutex

	done     chan struct{}
	fsnotify *fsnotify.Watcher
	isClosed bool
}

type AssetManagerOption func(*AssetManager)

// WithFetcher replaces the file system fetcher rooted at the configured base path.
func WithFetcher(fetcher ByteFetcher) AssetManagerOption {
	return func(am *AssetManager) {
		am.fetcher = fetcher
	}
}

func WithRegistry(registry *Registry) AssetManagerOption {
	return func(am *AssetManager) {
		am.registry = registry
	}
}

// WithJobSystem runs asynchronous loads on a job system owned by the caller.
func WithJobSystem(jobs *systems.JobSystem) AssetManagerOption {
	return func(am *AssetManager) {
		am.jobs = jobs
	}
}

func WithReloadCallback(fn ReloadFunc) AssetManagerOption {
	return func(am *AssetManager) {
		am.onReload = fn
	}
}

func NewAssetManager(cfg *core.Config, options ...AssetManagerOption) (*AssetManager, error) {
	if cfg == nil {
		cfg = core.DefaultConfig()
	}

	am := &AssetManager{
		config:       cfg,
		assets:       make(map[string]AssetInfo),
		loaders:      make(map[string]Loader),
		dependencies: make(map[string][]string),
		done:         make(chan struct{}),
	}
	for _, opt := range options {
		opt(am)
	}

	if am.fetcher == nil {
		am.fetcher = NewFSFetcher(os.DirFS(cfg.Assets.BasePath))
	}
	if am.registry == nil {
		am.registry = NewRegistry()
	}
	if am.jobs == nil {
		jobs, err := systems.NewJobSystem(cfg.Loader.Workers, jobQueueSize)
		if err != nil {
			return nil, err
		}
		am.jobs = jobs
		am.ownsJobs = true
	}

	am.RegisterLoader(loaders.NewObjLoader())

	return am, nil
}

// Initialize starts watching the asset directory when the configuration asks for it.
func (am *AssetManager) Initialize() error {
	if !am.config.Assets.Watch {
		return nil
	}

	fsWatch, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	am.fsnotify = fsWatch

	go am.start()

	return am.addRecursive(am.config.Assets.BasePath)
}

// RegisterLoader registers loader for each of its extensions, replacing previous ones.
func (am *AssetManager) RegisterLoader(loader Loader) {
	am.mutex.Lock()
	defer am.mutex.Unlock()

	for _, ext := range loader.Extensions() {
		am.loaders[strings.ToLower(ext)] = loader
	}
}

func (am *AssetManager) Registry() *Registry {
	return am.registry
}

func (am *AssetManager) loaderFor(source string) (Loader, error) {
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(source), "."))

	am.mutex.RLock()
	loader, exists := am.loaders[ext]
	am.mutex.RUnlock()
	if !exists {
		return nil, fmt.Errorf("%w: '%s' (%s)", core.ErrUnsupportedExtension, ext, source)
	}
	return loader, nil
}

// LoadAsset loads the source of assetPath and returns the handle of its label.
// assetPath is "path" or "path#label"; without a label the loader's root label is used.
func (am *AssetManager) LoadAsset(ctx context.Context, assetPath string) (metadata.Handle, error) {
	source, label, _ := strings.Cut(assetPath, "#")
	source = path.Clean(source)

	loader, err := am.loaderFor(source)
	if err != nil {
		return metadata.Handle{}, err
	}
	if label == "" {
		label = loader.RootLabel()
	}

	if err := am.load(ctx, source, loader); err != nil {
		return metadata.Handle{}, err
	}

	handle, ok := am.registry.Labeled(source, label)
	if !ok {
		return metadata.Handle{}, fmt.Errorf("%w: label '%s' of '%s'", core.ErrNotFound, label, source)
	}
	return handle, nil
}

// LoadAsync queues LoadAsset on the job system.
func (am *AssetManager) LoadAsync(assetPath string, onComplete func(metadata.Handle), onFailure func(error)) error {
	var handle metadata.Handle
	return am.jobs.Submit(metadata.JobTask{
		Name:    fmt.Sprintf("load '%s'", assetPath),
		JobType: metadata.JOB_TYPE_RESOURCE_LOAD,
		OnStart: func(ctx context.Context) error {
			h, err := am.LoadAsset(ctx, assetPath)
			handle = h
			return err
		},
		OnComplete: func() {
			if onComplete != nil {
				onComplete(handle)
			}
		},
		OnFailure: onFailure,
	})
}

// load runs loader over source and records the outcome in the load metrics.
func (am *AssetManager) load(ctx context.Context, source string, loader Loader) error {
	clock := core.NewClock()
	clock.Start()
	err := am.loadSource(ctx, source, loader)
	clock.Update()
	core.MetricsRecordLoad(source, clock.Elapsed(), err)
	return err
}

// loadSource commits the assets of source only when nothing failed.
func (am *AssetManager) loadSource(ctx context.Context, source string, loader Loader) error {
	lc := newLoadContext(source, am.fetcher, am.config.Loader)

	data, err := lc.ReadAssetBytes(ctx, source)
	if err != nil {
		err = core.NewLoadError(core.ErrorKindFetch, core.LoadStageScan, source, err)
		core.LogError("failed to load '%s': %s", source, err.Error())
		return err
	}

	if err := loader.Load(ctx, lc, data); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		core.LogWarn("load of '%s' was cancelled, nothing registered", source)
		return err
	}

	entries, err := lc.entries()
	if err != nil {
		core.LogError("failed to commit '%s': %s", source, err.Error())
		return err
	}
	am.registry.commit(source, entries)

	am.mutex.Lock()
	am.dependencies[source] = lc.Dependencies()
	if info, ok := am.assets[source]; ok {
		info.LastLoaded = time.Now()
		am.assets[source] = info
	}
	am.mutex.Unlock()

	return nil
}

// UnloadAsset drops every labeled asset of source and stops reloading it.
func (am *AssetManager) UnloadAsset(source string) {
	source = path.Clean(source)
	am.registry.Remove(source)

	am.mutex.Lock()
	delete(am.dependencies, source)
	am.mutex.Unlock()
}

// Dependencies returns the paths the last load of source fetched, source included.
func (am *AssetManager) Dependencies(source string) []string {
	am.mutex.RLock()
	defer am.mutex.RUnlock()

	deps := am.dependencies[path.Clean(source)]
	out := make([]string, len(deps))
	copy(out, deps)
	return out
}

// Assets lists the indexed files of the watched directory with the given type.
func (am *AssetManager) Assets(assetType metadata.ResourceType) []string {
	am.mutex.RLock()
	defer am.mutex.RUnlock()

	paths := []string{}
	for p, info := range am.assets {
		if info.Type == assetType {
			paths = append(paths, p)
		}
	}
	sort.Strings(paths)
	return paths
}

// Shutdown stops the watcher and the job system if the manager created it.
func (am *AssetManager) Shutdown() error {
	am.mutex.Lock()
	if am.isClosed {
		am.mutex.Unlock()
		return nil
	}
	am.isClosed = true
	am.mutex.Unlock()

	if am.fsnotify != nil {
		close(am.done)
	}
	if am.ownsJobs {
		return am.jobs.Shutdown()
	}
	return nil
}

func (am *AssetManager) closed() bool {
	am.mutex.RLock()
	defer am.mutex.RUnlock()
	return am.isClosed
}

// addRecursive starts watching the named directory and all sub-directories.
func (am *AssetManager) addRecursive(name string) error {
	if am.closed() {
		return errors.New("asset manager already closed")
	}
	return am.watchRecursive(name)
}

func (am *AssetManager) start() {
	for {
		select {

		case e := <-am.fsnotify.Events:
			s, err := os.Stat(e.Name)
			if err == nil && s != nil && s.IsDir() {
				if e.Op&fsnotify.Create != 0 {
					if err := am.watchRecursive(e.Name); err != nil {
						core.LogWarn("failed to watch '%s': %s", e.Name, err.Error())
					}
				}
				continue
			}
			p := am.assetPath(e.Name)
			// Handle create or modify events
			if e.Op&(fsnotify.Create|fsnotify.Write) != 0 {
				am.handleFileEvent(p)
				am.scheduleReloads(p)
			}
			//Can't stat a deleted file, so just try to remove it from the watch list
			if e.Op&fsnotify.Remove != 0 {
				am.removeAsset(p)
				_ = am.fsnotify.Remove(e.Name)
			}

		case e := <-am.fsnotify.Errors:
			if e != nil {
				core.LogError(e.Error())
			}

		case <-am.done:
			am.fsnotify.Close()
			return
		}
	}
}

// watchRecursive adds all directories under the given one to the watch list
// and indexes the files found on the way.
func (am *AssetManager) watchRecursive(root string) error {
	return filepath.Walk(root, func(walkPath string, fi os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if fi.IsDir() {
			return am.fsnotify.Add(walkPath)
		}
		am.handleFileEvent(am.assetPath(walkPath))
		return nil
	})
}

// assetPath turns a file system name under the base path into an asset path.
func (am *AssetManager) assetPath(name string) string {
	rel, err := filepath.Rel(am.config.Assets.BasePath, name)
	if err != nil {
		return filepath.ToSlash(name)
	}
	return filepath.ToSlash(rel)
}

// scheduleReloads queues a reload of every loaded source that fetched p.
func (am *AssetManager) scheduleReloads(p string) {
	am.mutex.RLock()
	sources := []string{}
	for source, deps := range am.dependencies {
		for _, dep := range deps {
			if dep == p {
				sources = append(sources, source)
				break
			}
		}
	}
	am.mutex.RUnlock()

	for _, source := range sources {
		am.reload(source)
	}
}

func (am *AssetManager) reload(source string) {
	core.LogInfo("'%s' changed, reloading", source)
	am.jobs.AddWorkNonBlocking(metadata.JobTask{
		Name:    fmt.Sprintf("reload '%s'", source),
		JobType: metadata.JOB_TYPE_RESOURCE_LOAD,
		OnStart: func(ctx context.Context) error {
			loader, err := am.loaderFor(source)
			if err != nil {
				return err
			}
			return am.load(ctx, source, loader)
		},
		OnComplete: func() {
			if am.onReload != nil {
				am.onReload(source, nil)
			}
		},
		OnFailure: func(err error) {
			core.LogWarn("reload of '%s' failed, keeping the previous assets", source)
			if am.onReload != nil {
				am.onReload(source, err)
			}
		},
	})
}

// Handle the creation or modification of a file
func (am *AssetManager) handleFileEvent(p string) {
	assetType := determineAssetType(p)
	if assetType == metadata.ResourceTypeNone {
		return
	}

	am.mutex.Lock()
	defer am.mutex.Unlock()

	info, ok := am.assets[p]
	if !ok {
		info = AssetInfo{Path: p, Type: assetType}
	}
	am.assets[p] = info
}

// Remove the asset from the index if it was deleted
func (am *AssetManager) removeAsset(p string) {
	am.mutex.Lock()
	defer am.mutex.Unlock()

	delete(am.assets, p)
}

func determineAssetType(p string) metadata.ResourceType {
	switch strings.ToLower(filepath.Ext(p)) {
	case ".obj":
		return metadata.ResourceTypeModel
	case ".mtl":
		return metadata.ResourceTypeMaterialLibrary
	case ".png", ".jpg", ".jpeg", ".gif", ".bmp", ".tif", ".tiff", ".webp", ".tga":
		return metadata.ResourceTypeImage
	default:
		return metadata.ResourceTypeNone
	}
}
