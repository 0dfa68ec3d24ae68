package rowutil

// Header aliases seen in yard exports, English and Vietnamese. Order matters only
// within the exact-match pass; the substring pass walks columns, not aliases.
var (
	AliasID                = NewAliases("số cont", "container", "container number", "cont", "id", "no", "số")
	AliasOwner             = NewAliases("hãng khai thác", "chủ hàng", "owner", "operator")
	AliasVessel            = NewAliases("tên tàu", "vessel")
	AliasTransshipmentPort = NewAliases("cảng đích", "pod", "port", "đích", "transshipment")
	AliasWeight            = NewAliases("trọng lượng", "weight", "gross weight", "tấn", "gw")
	AliasISO               = NewAliases("loại iso", "iso code", "iso", "type", "mã")
	AliasSize              = NewAliases("size", "sz", "length")
	AliasStatus            = NewAliases("f/e", "fe", "full/empty", "trạng thái", "status")
	AliasFlow              = NewAliases("hướng", "flow", "category", "cat", "type")
	AliasLocation          = NewAliases("vị trí trên bãi", "vị trí", "location")
)
