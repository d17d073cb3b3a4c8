package utils

// DereferenceSeed は、int64のポインタを安全にデリファレンスします。
// ポインタがnilの場合は0を返します。
func DereferenceSeed(seed *int64) int64 {
	if seed == nil {
		return 0
	}
	return *seed
}

// SeedPtr は、値が正の場合のみポインタを返します。
// 0以下はシード未指定（ランダム）として扱います。
func SeedPtr(seed int64) *int64 {
	if seed <= 0 {
		return nil
	}
	return &seed
}
