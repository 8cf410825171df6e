package pebble

import "fmt"

// Key schema:
//
//   lst:<listingID>                         → Listing
//   bid:<listingID>:<createdAt>:<bidID>     → Bid
//   bbd:<bidderID>:<createdAt>:<bidID>      → bid key (bidder index)
//   bix:<bidID>                             → bid key (id index)
//
// createdAt is unix nanoseconds zero-padded to 20 digits so a prefix scan
// returns bids in creation order.
const (
	prefixListing   = "lst:"
	prefixBid       = "bid:"
	prefixBidder    = "bbd:"
	prefixBidByID   = "bix:"
	timestampFormat = "%020d"
)

func listingKey(listingID string) []byte {
	return []byte(prefixListing + listingID)
}

func bidKey(listingID string, createdAt int64, bidID string) []byte {
	return []byte(fmt.Sprintf("%s%s:"+timestampFormat+":%s", prefixBid, listingID, createdAt, bidID))
}

func bidPrefix(listingID string) []byte {
	return []byte(prefixBid + listingID + ":")
}

func bidderKey(bidderID string, createdAt int64, bidID string) []byte {
	return []byte(fmt.Sprintf("%s%s:"+timestampFormat+":%s", prefixBidder, bidderID, createdAt, bidID))
}

func bidderPrefix(bidderID string) []byte {
	return []byte(prefixBidder + bidderID + ":")
}

func bidIDKey(bidID string) []byte {
	return []byte(prefixBidByID + bidID)
}

// keyUpperBound returns the exclusive upper bound for a prefix scan
func keyUpperBound(prefix []byte) []byte {
	bound := make([]byte, len(prefix))
	copy(bound, prefix)
	bound[len(bound)-1]++
	return bound
}
