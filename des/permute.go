package des

// permute собирает выход по таблице: бит i результата (с 1, от старшего)
// берется из бита table[i] входа шириной width бит
func permute(src uint64, width int, table []uint8) uint64 {
	var out uint64
	for _, pos := range table {
		out = out<<1 | src>>(width-int(pos))&1
	}
	return out
}

// rotateLeft28 выполняет циклический левый сдвиг 28-битного числа
func rotateLeft28(n uint32, k uint8) uint32 {
	const mask = 1<<28 - 1
	return (n<<k | n>>(28-k)) & mask
}
