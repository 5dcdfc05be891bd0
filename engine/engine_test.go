package engine

import (
	"context"
	"testing"
	"testing/fstest"
	"time"

	"github.com/spaghettifunk/anima-obj/engine/assets"
	"github.com/spaghettifunk/anima-obj/engine/core"
)

func TestEngineLifecycle(t *testing.T) {
	fsys := fstest.MapFS{
		"tri.obj": {Data: []byte("v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\n")},
	}
	e, err := New(core.DefaultConfig(), assets.WithFetcher(assets.NewFSFetcher(fsys)))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if err := e.Run(context.Background()); err == nil {
		t.Fatal("Run() before Initialize() must fail")
	}
	if err := e.Initialize(); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}
	if err := e.Initialize(); err == nil {
		t.Fatal("second Initialize() must fail")
	}

	if _, err := e.AssetManager().LoadAsset(context.Background(), "tri.obj"); err != nil {
		t.Fatalf("LoadAsset() error = %v", err)
	}

	done := make(chan error, 1)
	go func() { done <- e.Run(context.Background()) }()

	deadline := time.Now().Add(5 * time.Second)
	for e.Stage() != EngineStageRunning {
		if time.Now().After(deadline) {
			t.Fatal("engine never started running")
		}
		time.Sleep(time.Millisecond)
	}

	if err := e.Shutdown(); err != nil {
		t.Fatalf("Shutdown() error = %v", err)
	}
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run() error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run() did not return after Shutdown()")
	}
	if e.Stage() != EngineStageShutdown {
		t.Fatalf("Stage() = %s", e.Stage())
	}
	if err := e.Shutdown(); err != nil {
		t.Fatalf("second Shutdown() error = %v", err)
	}
}

func TestEngineRunStopsWithContext(t *testing.T) {
	e, err := New(nil, assets.WithFetcher(assets.NewFSFetcher(fstest.MapFS{})))
	if err != nil {
		t.Fatal(err)
	}
	if err := e.Initialize(); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := e.Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if e.Stage() != EngineStageShutdown {
		t.Fatalf("Stage() = %s", e.Stage())
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := core.DefaultConfig()
	cfg.Loader.Workers = 0
	if _, err := New(cfg); err == nil {
		t.Fatal("New() must validate the configuration")
	}
}
