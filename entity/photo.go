package entity

// Photo is one record of the picsum list endpoint.
type Photo struct {
	Id          string `json:"id" mapstructure:"id"`
	Author      string `json:"author" mapstructure:"author"`
	Width       int    `json:"width" mapstructure:"width"`
	Height      int    `json:"height" mapstructure:"height"`
	Url         string `json:"url" mapstructure:"url"`
	DownloadUrl string `json:"download_url" mapstructure:"download_url"`
}

// Refs returns the download locators of photos in order.
func Refs(photos []Photo) []string {

	refs := make([]string, len(photos))
	for i, photo := range photos {
		refs[i] = photo.DownloadUrl
	}
	return refs
}
