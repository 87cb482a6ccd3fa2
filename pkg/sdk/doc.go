// Package askmap provides a Go client for the askmap question answering
// service.
//
//	client, _ := askmap.New("https://askmap.example.com",
//	    askmap.WithAPIKey(os.Getenv("ASKMAP_API_KEY")),
//	)
//	ans, _ := client.Ask(ctx, "강남역 근처에서 최근 무슨 일이 있었어?", 5)
//	fmt.Println(ans.Answer)
//	for _, s := range ans.Sources {
//	    fmt.Println(s.ID, s.Score)
//	}
package askmap
