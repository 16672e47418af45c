package roster

import "testing"

func TestDisplayName(t *testing.T) {
	tests := []struct {
		student Student
		want    string
	}{
		{Student{FirstName: "Lucía", LastName: "García", SecondLastName: "Pérez"}, "García Pérez, Lucía"},
		{Student{FirstName: "Lucía", LastName: "García"}, "García, Lucía"},
		{Student{FirstName: "Lucía"}, "Lucía"},
		{Student{LastName: "García"}, "García"},
		{Student{FirstName: "Ana", SecondLastName: "Ruiz"}, "Ruiz, Ana"},
	}
	for _, tt := range tests {
		if got := tt.student.DisplayName(); got != tt.want {
			t.Errorf("DisplayName(%+v) = %q, want %q", tt.student, got, tt.want)
		}
	}
}

func TestRosterLookups(t *testing.T) {
	r := Roster{
		{ID: "s1", Group: "A"},
		{ID: "s2", Group: "B"},
		{ID: "s3", Group: "A"},
		{ID: "s4"},
	}

	ids := r.IDs()
	if len(ids) != 4 || ids[0] != "s1" || ids[3] != "s4" {
		t.Errorf("IDs() = %v", ids)
	}

	idx := r.Index()
	if idx["s3"] != 2 {
		t.Errorf("Index()[s3] = %d, want 2", idx["s3"])
	}

	if s, ok := r.Find("s2"); !ok || s.Group != "B" {
		t.Errorf("Find(s2) = %+v, %v", s, ok)
	}
	if _, ok := r.Find("missing"); ok {
		t.Error("Find(missing) should report false")
	}

	groupA := r.ByGroup("A")
	if len(groupA) != 2 || groupA[0].ID != "s1" || groupA[1].ID != "s3" {
		t.Errorf("ByGroup(A) = %+v", groupA)
	}

	groups := r.Groups()
	if len(groups) != 2 || groups[0] != "A" || groups[1] != "B" {
		t.Errorf("Groups() = %v, want [A B]", groups)
	}
}

func TestIndex_KeepsFirstPosition(t *testing.T) {
	r := Roster{{ID: "dup"}, {ID: "x"}, {ID: "dup"}}
	if got := r.Index()["dup"]; got != 0 {
		t.Errorf("Index()[dup] = %d, want 0", got)
	}
}
