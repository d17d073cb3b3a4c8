package generator

const (
	UseImageCompression     = true
	ImageCompressionQuality = 75

	// inlinePartLimit を超える参照画像は InlineData ではなく
	// File API 経由（FileData）で渡します。
	inlinePartLimit = 4 << 20

	cacheKeyFileAPIURI  = "fileapi_uri:"
	cacheKeyFileAPIName = "fileapi_name:"
)

// ImageOutput は Core の内部解析結果
type ImageOutput struct {
	Data     []byte
	MimeType string
	UsedSeed int64
}
