//go:build slabcache_debug

package slabcache

const debugging = true

func assert(cond bool, message string) {
	if !cond {
		panic(message)
	}
}
