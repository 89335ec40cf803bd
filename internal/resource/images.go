package resource

import "strings"

// DefaultPropertyImage is shown for listings saved without a photo.
const DefaultPropertyImage = "https://images.unsplash.com/photo-1600596542815-ffad4c1539a9?w=800&q=80"

// NormalizeImages reconciles the single image field with the image collection.
// A non-empty collection wins and its first entry becomes the canonical image;
// otherwise a single image becomes a one element collection.
func NormalizeImages(imageURL string, imageURLs []string) (string, []string) {
	urls := CleanList(imageURLs)
	if len(urls) > 0 {
		return urls[0], urls
	}

	imageURL = strings.TrimSpace(imageURL)
	if imageURL != "" {
		return imageURL, []string{imageURL}
	}

	return "", []string{}
}
