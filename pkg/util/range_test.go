package util

import (
	"reflect"
	"testing"
)

func TestExpandRange(t *testing.T) {
	tests := []struct {
		name    string
		list    string
		want    []int
		wantErr bool
	}{
		{name: "single value", list: "5", want: []int{5}},
		{name: "simple range", list: "1-5", want: []int{1, 2, 3, 4, 5}},
		{name: "mixed", list: "1-3,5,7-9", want: []int{1, 2, 3, 5, 7, 8, 9}},
		{name: "duplicates removed", list: "1-3,2-4", want: []int{1, 2, 3, 4}},
		{name: "empty string", list: "", want: nil},
		{name: "reversed range", list: "5-1", wantErr: true},
		{name: "garbage", list: "ten", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExpandRange(tt.list)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ExpandRange(%q) error = %v, wantErr %v", tt.list, err, tt.wantErr)
			}
			if !tt.wantErr && !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ExpandRange(%q) = %v, want %v", tt.list, got, tt.want)
			}
		})
	}
}

func TestExpandVLANList(t *testing.T) {
	got, err := ExpandVLANList("10,20-22")
	if err != nil {
		t.Fatalf("ExpandVLANList error: %v", err)
	}
	want := []string{"10", "20", "21", "22"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ExpandVLANList = %v, want %v", got, want)
	}

	if _, err := ExpandVLANList("4095"); err == nil {
		t.Error("ExpandVLANList(4095) should fail validation")
	}
}

func TestIsVLANID(t *testing.T) {
	tests := map[string]bool{
		"1":     true,
		"4094":  true,
		"0":     false,
		"4095":  false,
		"010":   false,
		"guest": false,
		"":      false,
	}
	for in, want := range tests {
		if got := IsVLANID(in); got != want {
			t.Errorf("IsVLANID(%q) = %v, want %v", in, got, want)
		}
	}
}
