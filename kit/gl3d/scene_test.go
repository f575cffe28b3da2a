package gl3d

import "testing"

func TestAddMeshFull(t *testing.T) {
	s := CreateScene(1)
	if id := s.AddMesh(quad()); id != 0 {
		t.Fatalf("first id = %d", id)
	}
	if id := s.AddMesh(quad()); id != -1 {
		t.Fatalf("full scene returned id %d", id)
	}
	if _, err := s.MeshVertices(1); err == nil {
		t.Fatalf("MeshVertices on a missing id succeeded")
	}
}
