package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"

	"github.com/rl1809/book-lending/internal/adapter/handler/pb"
	"github.com/rl1809/book-lending/internal/logger"
)

func main() {
	addr := flag.String("addr", "localhost:50051", "gRPC server address")
	totalRequests := flag.Int("requests", 50, "concurrent checkout attempts against one copy")
	loanDays := flag.Int("loan-days", 14, "loan length in days")
	flag.Parse()

	logger.Setup("info", "console")

	conn, err := grpc.NewClient(*addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		log.Fatal().Err(err).Str("addr", *addr).Msg("failed to connect")
	}
	defer conn.Close()

	client := pb.NewLibraryServiceClient(conn)
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	created, err := client.CreateBook(ctx, &pb.CreateBookRequest{
		Title:  fmt.Sprintf("Stress Copy %d", time.Now().UnixNano()),
		Author: "Load Generator",
		Genre:  "Test",
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create copy")
	}
	before, err := client.GetInventorySummary(ctx, &pb.GetInventorySummaryRequest{})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to read summary")
	}

	// Counters
	var successCount atomic.Int32
	var rejectedCount atomic.Int32
	var errorCount atomic.Int32

	// Spawn concurrent requests
	var wg sync.WaitGroup
	start := time.Now()

	for i := 0; i < *totalRequests; i++ {
		wg.Add(1)
		go func(userID int) {
			defer wg.Done()

			_, err := client.CheckoutBook(ctx, &pb.CheckoutBookRequest{
				UserID:   fmt.Sprintf("user-%d", userID),
				CopyID:   created.ID,
				LoanDays: int32(*loanDays),
			})
			switch status.Code(err) {
			case codes.OK:
				successCount.Add(1)
			case codes.InvalidArgument:
				rejectedCount.Add(1)
			default:
				errorCount.Add(1)
				log.Error().Err(err).Int("user", userID).Msg("checkout failed")
			}
		}(i)
	}

	wg.Wait()
	elapsed := time.Since(start)

	after, err := client.GetInventorySummary(ctx, &pb.GetInventorySummaryRequest{})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to read summary")
	}

	success := successCount.Load()
	rejected := rejectedCount.Load()
	failed := errorCount.Load()

	fmt.Println("========== STRESS TEST RESULTS ==========")
	fmt.Printf("Copy:             %s\n", created.ID)
	fmt.Printf("Total Requests:   %d\n", *totalRequests)
	fmt.Printf("Successful:       %d\n", success)
	fmt.Printf("Rejected:         %d\n", rejected)
	fmt.Printf("Errors:           %d\n", failed)
	fmt.Printf("Duration:         %v\n", elapsed)
	fmt.Printf("Checked out:      %d -> %d\n", before.CheckedOutBooks, after.CheckedOutBooks)
	fmt.Println("==========================================")

	pass := true
	if success == 1 && failed == 0 {
		fmt.Println("PASS: exactly one checkout succeeded")
	} else {
		fmt.Printf("FAIL: expected 1 success and 0 errors, got %d/%d\n", success, failed)
		pass = false
	}

	if after.TotalBooks == after.AvailableBooks+after.CheckedOutBooks {
		fmt.Println("PASS: summary is consistent")
	} else {
		fmt.Printf("FAIL: total %d != available %d + checked out %d\n",
			after.TotalBooks, after.AvailableBooks, after.CheckedOutBooks)
		pass = false
	}

	if _, err := client.ReturnBook(ctx, &pb.ReturnBookRequest{CopyID: created.ID}); err != nil {
		log.Warn().Err(err).Msg("failed to return copy")
	}
	if _, err := client.DeleteBook(ctx, &pb.DeleteBookRequest{ID: created.ID}); err != nil {
		log.Warn().Err(err).Msg("failed to delete copy")
	}

	if !pass {
		os.Exit(1)
	}
}
