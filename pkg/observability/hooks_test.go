package observability

import (
	"context"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	p := NoopPipelineHooks{}
	p.OnFormatStart(ctx, 12)
	p.OnFormatComplete(ctx, 17, time.Millisecond, nil)
	p.OnReplayStart(ctx, 3)
	p.OnOpApplied(ctx, "resize", time.Microsecond)
	p.OnReplayComplete(ctx, 3, time.Millisecond, nil)

	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "format")
	c.OnCacheMiss(ctx, "replay")
	c.OnCacheSet(ctx, "format", 1024)

	s := NoopServerHooks{}
	s.OnRequest(ctx, "POST", "/v1/resize")
	s.OnResponse(ctx, "POST", "/v1/resize", 200, time.Millisecond)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()

	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Pipeline() should return NoopPipelineHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}
	if _, ok := Server().(NoopServerHooks); !ok {
		t.Error("Server() should return NoopServerHooks by default")
	}

	customPipeline := &testPipelineHooks{}
	SetPipelineHooks(customPipeline)
	if Pipeline() != customPipeline {
		t.Error("SetPipelineHooks should set custom hooks")
	}

	customCache := &testCacheHooks{}
	SetCacheHooks(customCache)
	if Cache() != customCache {
		t.Error("SetCacheHooks should set custom hooks")
	}

	customServer := &testServerHooks{}
	SetServerHooks(customServer)
	if Server() != customServer {
		t.Error("SetServerHooks should set custom hooks")
	}

	Pipeline().OnOpApplied(context.Background(), "drag", time.Millisecond)
	if customPipeline.applied != 1 {
		t.Errorf("custom hook called %d times, want 1", customPipeline.applied)
	}

	Reset()
	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Reset() should restore NoopPipelineHooks")
	}
	if _, ok := Server().(NoopServerHooks); !ok {
		t.Error("Reset() should restore NoopServerHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()

	custom := &testPipelineHooks{}
	SetPipelineHooks(custom)
	SetPipelineHooks(nil)

	if Pipeline() != custom {
		t.Error("SetPipelineHooks(nil) should be ignored")
	}

	Reset()
}

type testPipelineHooks struct {
	NoopPipelineHooks
	applied int
}

func (h *testPipelineHooks) OnOpApplied(context.Context, string, time.Duration) { h.applied++ }

type testCacheHooks struct{ NoopCacheHooks }
type testServerHooks struct{ NoopServerHooks }
