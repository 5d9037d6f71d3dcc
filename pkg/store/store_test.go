package store

import (
	"reflect"
	"testing"
)

func TestRedisKey(t *testing.T) {
	if got := redisKey(TemplateTable, "campus"); got != "MIST_TEMPLATE|campus" {
		t.Errorf("redisKey() = %q", got)
	}
}

func TestStatusFromHash(t *testing.T) {
	got := statusFromHash("sw1.txt", map[string]string{
		"template":       "campus",
		"format":         "ios",
		"success_vlan":   "true",
		"success_config": "false",
		"error_message":  "Error when reading configuration from sw1.txt",
	})
	want := &FileStatus{
		File:          "sw1.txt",
		Template:      "campus",
		Format:        "ios",
		SuccessVlan:   true,
		SuccessConfig: false,
		ErrorMessage:  "Error when reading configuration from sw1.txt",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("statusFromHash() = %+v, want %+v", got, want)
	}
}
