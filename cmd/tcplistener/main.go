package main

import (
	"flag"
	"fmt"
	"net"
	"os"
	"sort"
	"time"

	"github.com/nhdewitt/www-from-tcp/internal/logging"
	"github.com/nhdewitt/www-from-tcp/internal/request"
)

// tcplistener prints how the server would parse each incoming request
// without answering it.
func main() {
	addr := flag.String("addr", "localhost:8080", "address to listen on")
	maxBytes := flag.Int("max-request-bytes", 8192, "cap on the request header block")
	flag.Parse()

	log := logging.New(os.Stderr, "debug", true)

	listener, err := net.Listen("tcp", *addr)
	if err != nil {
		log.Fatal().Err(err).Msg("error listening")
	}
	defer listener.Close()

	log.Info().Str("addr", listener.Addr().String()).Msg("listening for TCP traffic")
	for {
		c, err := listener.Accept()
		if err != nil {
			log.Fatal().Err(err).Msg("error accepting connection")
		}
		log.Info().Str("remote", c.RemoteAddr().String()).Msg("connection accepted")

		_ = c.SetReadDeadline(time.Now().Add(10 * time.Second))
		req, err := request.RequestFromReader(c, *maxBytes)
		c.Close()
		if err != nil {
			log.Warn().Err(err).Msg("error parsing request")
			continue
		}

		fmt.Println("Request line:")
		fmt.Printf("- Method: %s\n", req.RequestLine.Method)
		fmt.Printf("- Target: %s\n", req.RequestLine.RequestTarget)
		fmt.Printf("- Version: %s\n", req.RequestLine.HttpVersion)
		fmt.Println("Headers:")
		names := make([]string, 0, len(req.Headers))
		for k := range req.Headers {
			names = append(names, k)
		}
		sort.Strings(names)
		for _, k := range names {
			fmt.Printf("- %s: %s\n", k, req.Headers[k])
		}
	}
}
