package gallery

import "testing"

func TestValidPhotoKey(t *testing.T) {
	cases := []struct {
		name string
		key  string
		want bool
	}{
		{"minted key", "users/7/photos/2f4c.jpg", true},
		{"no extension", "users/7/photos/2f4c", true},
		{"foreign prefix", "avatars/7/2f4c.jpg", false},
		{"missing photos segment", "users/7/2f4c.jpg", false},
		{"path escape", "users/7/photos/../../secrets", false},
		{"empty", "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := validPhotoKey(tc.key); got != tc.want {
				t.Fatalf("validPhotoKey(%q) = %v, want %v", tc.key, got, tc.want)
			}
		})
	}
}
