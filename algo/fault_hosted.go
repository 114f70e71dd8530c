//go:build !baremetal

package algo

func fault() {
	panic(ErrFault)
}
