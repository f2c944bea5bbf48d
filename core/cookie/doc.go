// Package cookie provides an HTTP cookie manager with HMAC-SHA256 signing,
// key rotation, size limits, and one-shot flash messages.
//
// Flash messages carry transient UI notices across a redirect and are
// deleted on first read:
//
//	_ = cookies.SetFlash(w, "notice", Flash{Kind: "success", Message: "saved"})
//	// ... after the redirect:
//	var f Flash
//	if err := cookies.GetFlash(w, r, "notice", &f); err == nil {
//		// render f
//	}
package cookie
