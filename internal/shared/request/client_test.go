package request

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveClientType(t *testing.T) {
	cases := []struct {
		name, header, ua, want string
	}{
		{"explicit header wins", "Mobile", "Mozilla/5.0", ClientMobile},
		{"browser", "", "Mozilla/5.0 (X11; Linux x86_64)", ClientWeb},
		{"flutter", "", "Dart/3.2 (dart:io)", ClientMobile},
		{"curl", "", "curl/8.4.0", ClientAPI},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ResolveClientType(tc.header, tc.ua))
		})
	}
	assert.True(t, IsWebClient(ClientWeb))
	assert.False(t, IsWebClient(ClientAPI))
}
