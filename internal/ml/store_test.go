package ml

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/DouzZ4/checkinc-ml-service/internal/domain"
)

func TestStore_MissingArtifactDegradesToUntrained(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "model.json"))

	artifact := store.Current()
	if artifact.Trained() {
		t.Fatal("missing artifact must degrade to untrained")
	}
	if artifact.Version != InitialVersion {
		t.Fatalf("version = %q, want %q", artifact.Version, InitialVersion)
	}
}

func TestStore_CorruptArtifactDegradesToUntrained(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	store := NewStore(path)
	if store.Current().Trained() {
		t.Fatal("corrupt artifact must degrade to untrained")
	}
}

func TestStore_ReplaceRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "models", "model.json")

	store := NewStore(path)
	artifact := trainedIdentityArtifact()
	if err := store.Replace(artifact); err != nil {
		t.Fatalf("replace failed: %v", err)
	}

	// A fresh store must read back a functionally equivalent artifact:
	// same version, same prediction for a fixed probe vector.
	reloaded := NewStore(path).Current()
	if reloaded.Version != artifact.Version {
		t.Errorf("reloaded version = %q, want %q", reloaded.Version, artifact.Version)
	}

	probe := []float64{8, 2, 0, 115, 10, 131.7, 1}
	want, err := artifact.Predict(probe)
	if err != nil {
		t.Fatal(err)
	}
	got, err := reloaded.Predict(probe)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("reloaded prediction = %v, want %v", got, want)
	}
}

func TestStore_FailedSaveLeavesStateUntouched(t *testing.T) {
	dir := t.TempDir()

	// Block MkdirAll by placing a regular file where the model
	// directory should be.
	blocker := filepath.Join(dir, "blocked")
	if err := os.WriteFile(blocker, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	store := NewStore(filepath.Join(blocker, "sub", "model.json"))
	before := store.Current()

	err := store.Replace(trainedIdentityArtifact())
	if err == nil {
		t.Fatal("expected save to fail")
	}
	var storageErr *domain.StorageError
	if !errors.As(err, &storageErr) {
		t.Fatalf("expected StorageError, got %T", err)
	}

	if store.Current() != before {
		t.Fatal("failed save must not swap the in-memory artifact")
	}
}
