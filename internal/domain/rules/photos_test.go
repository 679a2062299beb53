package rules

import "testing"

func TestAllowedPhotoContentType(t *testing.T) {
	cases := []struct {
		contentType string
		want        bool
	}{
		{contentType: "image/jpeg", want: true},
		{contentType: "image/png", want: true},
		{contentType: "image/gif", want: true},
		{contentType: "image/webp", want: false},
		{contentType: "application/pdf", want: false},
		{contentType: "", want: false},
	}

	for _, tc := range cases {
		if got := AllowedPhotoContentType(tc.contentType); got != tc.want {
			t.Fatalf("AllowedPhotoContentType(%q) = %v, want %v", tc.contentType, got, tc.want)
		}
	}
}

func TestAllowedPhotoSize(t *testing.T) {
	if !AllowedPhotoSize(MaxPhotoSizeBytes) {
		t.Fatal("expected exact limit to be allowed")
	}
	if AllowedPhotoSize(MaxPhotoSizeBytes + 1) {
		t.Fatal("expected one byte over the limit to be rejected")
	}
	if AllowedPhotoSize(0) {
		t.Fatal("expected empty file to be rejected")
	}
}
