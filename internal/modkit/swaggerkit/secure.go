package swaggerkit

import "strings"

// securedOps maps a route path to the verbs that sit behind webhook
// signature verification. Written while routes are wired, read when
// doc.json is served
var securedOps = map[string][]string{}

// MarkSecurePath records that verb on path requires a valid webhook
// signature. httpkit.Protected calls this during route wiring, before
// the server accepts traffic
func MarkSecurePath(path, verb string) {
	if path == "" || verb == "" {
		return
	}
	verb = strings.ToLower(verb)
	for _, v := range securedOps[path] {
		if v == verb {
			return
		}
	}
	securedOps[path] = append(securedOps[path], verb)
}
