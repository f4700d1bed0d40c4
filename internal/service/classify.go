package service

import (
	"net/url"

	"learnnote/internal/domain"
	"learnnote/internal/domain/models"
)

const (
	youTubeHost   = "www.youtube.com"
	youTubeIDSize = 11
)

// Classify inspects a URI and tags the resource type. YouTube watch URLs are
// reduced to the bare video id; everything else passes through unchanged.
// The stored form is deliberately not round-trip safe: re-classifying an
// already-extracted id yields "other" since a bare id is not a watch URL.
func Classify(rawURI string) (resourceType, storedURI string, err error) {
	u, err := url.Parse(rawURI)
	if err != nil {
		return "", "", domain.Validationf("Uri is invalid")
	}

	if u.Host == youTubeHost {
		if id := u.Query().Get("v"); id != "" {
			if len(id) > youTubeIDSize {
				id = id[:youTubeIDSize]
			}
			return models.ResourceTypeYouTube, id, nil
		}
	}

	return models.ResourceTypeOther, rawURI, nil
}

// ExtractYouTubeID pulls the video id out of a watch URL for requests that
// explicitly claim type youtube.
func ExtractYouTubeID(rawURI string) (string, error) {
	typ, stored, err := Classify(rawURI)
	if err != nil {
		return "", err
	}
	if typ != models.ResourceTypeYouTube {
		return "", domain.Validationf("Youtube url is invalid")
	}
	return stored, nil
}
