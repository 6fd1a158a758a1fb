package model_test

import (
	"testing"

	"github.com/m-mizutani/mtgdump/pkg/domain/model"
)

func TestFetchInfo_Success(t *testing.T) {
	tests := []struct {
		name     string
		info     *model.FetchInfo
		expected bool
	}{
		{
			name:     "200 OK",
			info:     &model.FetchInfo{StatusCode: 200},
			expected: true,
		},
		{
			name:     "206 Partial Content",
			info:     &model.FetchInfo{StatusCode: 206},
			expected: true,
		},
		{
			name:     "301 Moved Permanently",
			info:     &model.FetchInfo{StatusCode: 301},
			expected: false,
		},
		{
			name:     "404 Not Found",
			info:     &model.FetchInfo{StatusCode: 404},
			expected: false,
		},
		{
			name:     "500 Internal Server Error",
			info:     &model.FetchInfo{StatusCode: 500},
			expected: false,
		},
		{
			name:     "zero status",
			info:     &model.FetchInfo{},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.info.Success()
			if got != tt.expected {
				t.Errorf("Success() = %v, want %v", got, tt.expected)
			}
		})
	}
}
