package render

// SwizzleBGRA converts BGRA pixels into RGBA in dst. The camera leaves the fourth
// byte unset, so alpha is forced opaque. Only whole pixels present in both
// slices are written.
func SwizzleBGRA(dst, src []byte) {
	n := min(len(dst), len(src)) &^ 3
	for i := 0; i < n; i += 4 {
		dst[i] = src[i+2]
		dst[i+1] = src[i+1]
		dst[i+2] = src[i]
		dst[i+3] = 0xff
	}
}
