package profiling

import (
	"strings"
	"testing"
	"time"
)

func TestTrackAndReset(t *testing.T) {
	ResetFrame()
	stop := Track("world.Update")
	time.Sleep(time.Millisecond)
	stop()
	Track("world.BuildMeshes")()
	Track("meshing.Build")()

	if Count("world.Update") != 1 {
		t.Fatalf("expected one sample, got %d", Count("world.Update"))
	}
	if SumWithPrefix("world.") < time.Millisecond {
		t.Errorf("world.* total too small: %v", SumWithPrefix("world."))
	}
	top := TopN(1)
	if !strings.HasPrefix(top, "world.Update:") {
		t.Errorf("unexpected top entry %q", top)
	}

	ResetFrame()
	if len(Snapshot()) != 0 {
		t.Errorf("expected empty snapshot after reset")
	}
	if TopN(3) != "" {
		t.Errorf("expected empty TopN after reset")
	}
}
