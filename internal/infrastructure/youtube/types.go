package youtube

// searchResponse is the subset of the search.list response we use
type searchResponse struct {
	Items []searchItem `json:"items"`
}

type searchItem struct {
	ID struct {
		Kind    string `json:"kind"`
		VideoID string `json:"videoId"`
	} `json:"id"`
	Snippet snippet `json:"snippet"`
}

type snippet struct {
	Title        string     `json:"title"`
	ChannelTitle string     `json:"channelTitle"`
	Thumbnails   thumbnails `json:"thumbnails"`
}

type thumbnails struct {
	Default *thumbnail `json:"default,omitempty"`
	Medium  *thumbnail `json:"medium,omitempty"`
	High    *thumbnail `json:"high,omitempty"`
}

type thumbnail struct {
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// videosResponse is the subset of the videos.list response we use
type videosResponse struct {
	Items []videoItem `json:"items"`
}

type videoItem struct {
	ID     string      `json:"id"`
	Status videoStatus `json:"status"`
}

type videoStatus struct {
	UploadStatus  string `json:"uploadStatus"`
	PrivacyStatus string `json:"privacyStatus"`
	Embeddable    bool   `json:"embeddable"`
}

// apiErrorResponse is the error envelope returned by the Data API
type apiErrorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Errors  []struct {
			Reason string `json:"reason"`
		} `json:"errors"`
	} `json:"error"`
}

func (e *apiErrorResponse) reason() string {
	if e == nil || len(e.Error.Errors) == 0 {
		return ""
	}
	return e.Error.Errors[0].Reason
}
