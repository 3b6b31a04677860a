package lessons

import (
	"fmt"
	"math/rand/v2"
)

func lessonUnion() Lesson {
	return Lesson{
		ID:    17,
		Title: "UNION & Set Operations",
		Theme: "E-commerce: online and store orders",
		Schema: `CREATE TABLE online_orders (id INT, customer TEXT, product TEXT, amount REAL, order_date TEXT);
CREATE TABLE store_orders (id INT, customer TEXT, product TEXT, amount REAL, order_date TEXT);
INSERT INTO online_orders VALUES (1,'Alice','Laptop',999.99,'2024-01-10'),(2,'Bob','Headphones',79.99,'2024-01-12'),(3,'Carol','Keyboard',49.99,'2024-01-15'),(4,'Alice','Mouse',29.99,'2024-01-18'),(5,'Dave','Monitor',349.99,'2024-01-20'),(6,'Eve','Laptop',999.99,'2024-02-01'),(7,'Frank','Tablet',449.99,'2024-02-05'),(8,'Bob','Webcam',89.99,'2024-02-10');
INSERT INTO store_orders VALUES (1,'Grace','Laptop',1049.99,'2024-01-11'),(2,'Hank','Mouse',34.99,'2024-01-13'),(3,'Alice','Keyboard',54.99,'2024-01-16'),(4,'Ivan','Headphones',84.99,'2024-01-19'),(5,'Carol','Printer',199.99,'2024-01-22'),(6,'Jack','Monitor',379.99,'2024-02-02'),(7,'Grace','Tablet',479.99,'2024-02-06'),(8,'Hank','Desk Lamp',45.99,'2024-02-12');`,
		SchemaDisplay: "online_orders(id INT, customer TEXT, product TEXT, amount REAL, order_date TEXT)\nstore_orders(id INT, customer TEXT, product TEXT, amount REAL, order_date TEXT)",
		DefaultQuery:  "SELECT * FROM online_orders;\n-- SELECT * FROM store_orders;",
		Exercises: []Exercise{
			{
				Instruction: "Combine all orders from both tables using UNION ALL. Select customer, product, and amount from each.",
				Hint:        "SELECT customer, product, amount FROM online_orders UNION ALL SELECT customer, product, amount FROM store_orders",
				Solution:    "SELECT customer, product, amount FROM online_orders UNION ALL SELECT customer, product, amount FROM store_orders",
			},
			{
				Instruction: "Get a list of all distinct customer names from both tables using UNION.",
				Hint:        "SELECT customer FROM ... UNION SELECT customer FROM ...",
				Solution:    "SELECT customer FROM online_orders UNION SELECT customer FROM store_orders",
			},
			{
				Instruction: "Find products that were sold in both channels using INTERSECT.",
				Hint:        "SELECT product FROM ... INTERSECT SELECT product FROM ...",
				Solution:    "SELECT product FROM online_orders INTERSECT SELECT product FROM store_orders",
			},
			{
				Instruction: "Find products sold online but NOT in store using EXCEPT.",
				Hint:        "SELECT product FROM online_orders EXCEPT SELECT product FROM store_orders",
				Solution:    "SELECT product FROM online_orders EXCEPT SELECT product FROM store_orders",
			},
		},
		Templates: []Template{
			func(r *rand.Rand) Question {
				cols := Pick(r, "customer, product", "customer, product, amount")
				return Question{
					Type:     Write,
					Prompt:   fmt.Sprintf("Combine all rows from online_orders and store_orders using UNION ALL. Select %s.", cols),
					Solution: fmt.Sprintf("SELECT %s FROM online_orders UNION ALL SELECT %s FROM store_orders", cols, cols),
				}
			},
			func(r *rand.Rand) Question {
				col := Pick(r, "customer", "product")
				return Question{
					Type:     Write,
					Prompt:   fmt.Sprintf("Get all distinct %s values from both tables using UNION.", col),
					Solution: fmt.Sprintf("SELECT %s FROM online_orders UNION SELECT %s FROM store_orders", col, col),
				}
			},
			writeQ("Find products that appear in both online_orders and store_orders using INTERSECT.",
				"SELECT product FROM online_orders INTERSECT SELECT product FROM store_orders"),
			choice("What is the difference between UNION and UNION ALL?",
				"UNION removes duplicates, UNION ALL keeps them", "UNION ALL removes duplicates, UNION keeps them",
				"UNION is faster", "There is no difference"),
			choice("What must be true about the two SELECTs in a UNION?",
				"Same number of columns with compatible types", "Same table names", "Same WHERE clauses", "Same number of rows"),
			fixQ("Fix this UNION (mismatched columns):",
				"SELECT customer, product FROM online_orders UNION SELECT customer FROM store_orders;",
				"SELECT customer, product FROM online_orders UNION SELECT customer, product FROM store_orders;"),
			choice("What does EXCEPT return?",
				"Rows in the first query but not in the second", "Rows in both queries", "Rows in neither query", "All rows minus duplicates"),
		},
	}
}

func lessonCTE() Lesson {
	return Lesson{
		ID:    18,
		Title: "Common Table Expressions (CTEs)",
		Theme: "Social Media: users, posts, follows",
		Schema: `CREATE TABLE users (id INT, username TEXT, join_date TEXT);
CREATE TABLE posts (id INT, user_id INT, content TEXT, created_date TEXT, likes_count INT);
CREATE TABLE follows (follower_id INT, following_id INT);
INSERT INTO users VALUES (1,'alice_dev','2023-01-15'),(2,'bob_photo','2023-03-22'),(3,'carol_writes','2023-02-10'),(4,'dave_music','2023-06-01'),(5,'eve_travels','2023-04-18'),(6,'frank_cooks','2023-07-30');
INSERT INTO posts VALUES (1,1,'Just shipped a new feature!','2024-01-10',45),(2,1,'Debugging at midnight again','2024-01-15',32),(3,1,'Code review tips thread','2024-02-01',78),(4,2,'Sunset at the beach','2024-01-12',120),(5,2,'New camera lens review','2024-01-20',95),(6,3,'My top 10 books of 2024','2024-01-18',67),(7,3,'Writing productivity hacks','2024-02-05',53),(8,3,'Short story draft','2024-02-12',41),(9,3,'Poetry collection update','2024-02-20',29),(10,4,'New album dropping soon','2024-01-25',88),(11,5,'Hiking in Patagonia','2024-02-01',110),(12,5,'Travel budget tips','2024-02-10',72);
INSERT INTO follows VALUES (1,2),(1,3),(2,1),(2,3),(3,1),(3,2),(3,4),(4,1),(4,5),(5,1),(5,2),(5,3),(6,1),(6,2),(6,3),(6,4),(6,5);`,
		SchemaDisplay: "users(id INT, username TEXT, join_date TEXT)\nposts(id INT, user_id INT, content TEXT, created_date TEXT, likes_count INT)\nfollows(follower_id INT, following_id INT)",
		DefaultQuery:  "SELECT * FROM users;\n-- SELECT * FROM posts;\n-- SELECT * FROM follows;",
		Exercises: []Exercise{
			{
				Instruction: "Write a CTE named 'prolific' that finds user_ids with more than 2 posts. " +
					"Then select the username and post count by joining with the users table.",
				Hint: "WITH prolific AS (SELECT user_id, COUNT(*) AS post_count FROM posts GROUP BY user_id HAVING COUNT(*) > 2)",
				Solution: "WITH prolific AS (SELECT user_id, COUNT(*) AS post_count FROM posts GROUP BY user_id HAVING COUNT(*) > 2) " +
					"SELECT u.username, p.post_count FROM prolific p JOIN users u ON u.id = p.user_id",
			},
			{
				Instruction: "Write a CTE named 'avg_likes' that calculates each user's average likes_count. " +
					"Then select users whose average is above the overall average likes. Show username and avg_likes.",
				Hint: "First CTE gets AVG(likes_count) per user_id, then compare to (SELECT AVG(likes_count) FROM posts)",
				Solution: "WITH avg_likes AS (SELECT user_id, AVG(likes_count) AS avg_likes FROM posts GROUP BY user_id) " +
					"SELECT u.username, a.avg_likes FROM avg_likes a JOIN users u ON u.id = a.user_id " +
					"WHERE a.avg_likes > (SELECT AVG(likes_count) FROM posts)",
			},
			{
				Instruction: "Use two CTEs: 'post_counts' (count posts per user_id) and 'follower_counts' (count followers per following_id). " +
					"Then join both with users to show username, posts, and followers.",
				Hint: "WITH post_counts AS (...), follower_counts AS (...) SELECT ...",
				Solution: "WITH post_counts AS (SELECT user_id, COUNT(*) AS posts FROM posts GROUP BY user_id), " +
					"follower_counts AS (SELECT following_id AS user_id, COUNT(*) AS followers FROM follows GROUP BY following_id) " +
					"SELECT u.username, COALESCE(p.posts, 0) AS posts, COALESCE(f.followers, 0) AS followers FROM users u " +
					"LEFT JOIN post_counts p ON u.id = p.user_id LEFT JOIN follower_counts f ON u.id = f.user_id",
			},
		},
		Templates: []Template{
			func(r *rand.Rand) Question {
				n := Pick(r, 1, 2, 3)
				return Question{
					Type: Write,
					Prompt: fmt.Sprintf("Write a CTE named 'active' that finds user_ids with more than %d posts. "+
						"Then select username and post count by joining with users.", n),
					Solution: fmt.Sprintf("WITH active AS (SELECT user_id, COUNT(*) AS post_count FROM posts GROUP BY user_id HAVING COUNT(*) > %d) "+
						"SELECT u.username, a.post_count FROM active a JOIN users u ON u.id = a.user_id", n),
				}
			},
			func(r *rand.Rand) Question {
				n := Pick(r, 50, 60, 70)
				return Question{
					Type: Write,
					Prompt: fmt.Sprintf("Write a CTE named 'popular' that finds posts with likes_count > %d. "+
						"Then select the username and content by joining with users.", n),
					Solution: fmt.Sprintf("WITH popular AS (SELECT * FROM posts WHERE likes_count > %d) "+
						"SELECT u.username, p.content FROM popular p JOIN users u ON u.id = p.user_id", n),
				}
			},
			writeQ("Write a CTE named \"follower_counts\" that counts followers per user (following_id). "+
				"Then select username and follower count, joining with users.",
				"WITH follower_counts AS (SELECT following_id AS user_id, COUNT(*) AS followers FROM follows GROUP BY following_id) "+
					"SELECT u.username, f.followers FROM follower_counts f JOIN users u ON u.id = f.user_id"),
			choice("What does CTE stand for?",
				"Common Table Expression", "Computed Table Entity", "Conditional Table Expression", "Cascaded Table Extension"),
			choice("How long does a CTE exist?",
				"Only for the duration of the single query", "Until the session ends", "Permanently like a table", "Until explicitly dropped"),
			fixQ("Fix this CTE (missing AS keyword):",
				"WITH active (SELECT user_id, COUNT(*) AS cnt FROM posts GROUP BY user_id) SELECT * FROM active;",
				"WITH active AS (SELECT user_id, COUNT(*) AS cnt FROM posts GROUP BY user_id) SELECT * FROM active;"),
			fixQ("Fix this CTE (wrong reference):",
				"WITH post_stats AS (SELECT user_id, COUNT(*) AS cnt FROM posts GROUP BY user_id) SELECT * FROM posts_stats;",
				"WITH post_stats AS (SELECT user_id, COUNT(*) AS cnt FROM posts GROUP BY user_id) SELECT * FROM post_stats;"),
		},
	}
}

// Window solutions carry ORDER BY inside OVER(), which orders the window
// frame and not the output, so their rows are compared as sets.
func lessonWindow() Lesson {
	return Lesson{
		ID:    19,
		Title: "Window Functions",
		Theme: "Sales Analytics: employees, departments, revenue",
		Schema: `CREATE TABLE sales (id INT, employee TEXT, department TEXT, month TEXT, revenue INT, units_sold INT);
INSERT INTO sales VALUES (1,'Alice','Engineering','2024-01',15000,120),(2,'Alice','Engineering','2024-02',18000,145),(3,'Alice','Engineering','2024-03',16500,130),(4,'Bob','Engineering','2024-01',12000,95),(5,'Bob','Engineering','2024-02',14000,110),(6,'Bob','Engineering','2024-03',13500,105),(7,'Carol','Marketing','2024-01',9000,70),(8,'Carol','Marketing','2024-02',11000,88),(9,'Carol','Marketing','2024-03',10500,82),(10,'Dave','Marketing','2024-01',8500,65),(11,'Dave','Marketing','2024-02',9500,75),(12,'Dave','Marketing','2024-03',12000,95),(13,'Eve','Sales','2024-01',20000,160),(14,'Eve','Sales','2024-02',22000,175),(15,'Eve','Sales','2024-03',19000,150),(16,'Frank','Sales','2024-01',17000,135),(17,'Frank','Sales','2024-02',15500,125),(18,'Frank','Sales','2024-03',18500,148);`,
		SchemaDisplay: "sales(id INT, employee TEXT, department TEXT, month TEXT, revenue INT, units_sold INT)",
		DefaultQuery:  "SELECT * FROM sales;",
		Exercises: []Exercise{
			{
				Instruction:    "Rank employees by revenue within each department (highest first). Show employee, department, revenue, and the rank as dept_rank.",
				Hint:           "RANK() OVER (PARTITION BY department ORDER BY revenue DESC)",
				Solution:       "SELECT employee, department, revenue, RANK() OVER (PARTITION BY department ORDER BY revenue DESC) AS dept_rank FROM sales",
				OrderSensitive: unordered(),
			},
			{
				Instruction:    "Calculate a running total of revenue per employee, ordered by month. Show employee, month, revenue, and the running total as running_total.",
				Hint:           "SUM(revenue) OVER (PARTITION BY employee ORDER BY month)",
				Solution:       "SELECT employee, month, revenue, SUM(revenue) OVER (PARTITION BY employee ORDER BY month) AS running_total FROM sales",
				OrderSensitive: unordered(),
			},
			{
				Instruction:    "Use LAG to show each employee's previous month revenue alongside the current. Show employee, month, revenue, and previous revenue as prev_revenue.",
				Hint:           "LAG(revenue, 1) OVER (PARTITION BY employee ORDER BY month)",
				Solution:       "SELECT employee, month, revenue, LAG(revenue, 1) OVER (PARTITION BY employee ORDER BY month) AS prev_revenue FROM sales",
				OrderSensitive: unordered(),
			},
			{
				Instruction:    "Assign a ROW_NUMBER() to all sales ordered by revenue DESC. Show employee, revenue, and the number as row_num.",
				Hint:           "ROW_NUMBER() OVER (ORDER BY revenue DESC)",
				Solution:       "SELECT employee, revenue, ROW_NUMBER() OVER (ORDER BY revenue DESC) AS row_num FROM sales",
				OrderSensitive: unordered(),
			},
		},
		Templates: []Template{
			func(r *rand.Rand) Question {
				fn := Pick(r, "RANK()", "DENSE_RANK()")
				dept := Pick(r, "Engineering", "Marketing", "Sales")
				return Question{
					Type: Write,
					Prompt: fmt.Sprintf("Use %s to rank employees by revenue (DESC) within the '%s' department. "+
						"Show employee, revenue, and the rank as rnk. Filter to department = '%s'.", fn, dept, dept),
					Solution:       fmt.Sprintf("SELECT employee, revenue, %s OVER (ORDER BY revenue DESC) AS rnk FROM sales WHERE department = '%s'", fn, dept),
					OrderSensitive: unordered(),
				}
			},
			func(r *rand.Rand) Question {
				col := Pick(r, "revenue", "units_sold")
				return Question{
					Type: Write,
					Prompt: fmt.Sprintf("Calculate a running total of %s per employee ordered by month. "+
						"Show employee, month, %s, and the running total as running_total.", col, col),
					Solution:       fmt.Sprintf("SELECT employee, month, %s, SUM(%s) OVER (PARTITION BY employee ORDER BY month) AS running_total FROM sales", col, col),
					OrderSensitive: unordered(),
				}
			},
			func(*rand.Rand) Question {
				return Question{
					Type:           Write,
					Prompt:         "Use LAG to show each employee's previous month revenue. Show employee, month, revenue, and the lagged value as prev_revenue.",
					Solution:       "SELECT employee, month, revenue, LAG(revenue, 1) OVER (PARTITION BY employee ORDER BY month) AS prev_revenue FROM sales",
					OrderSensitive: unordered(),
				}
			},
			choice("What is the difference between RANK() and DENSE_RANK()?",
				"RANK leaves gaps after ties, DENSE_RANK does not", "DENSE_RANK leaves gaps after ties, RANK does not",
				"They are identical", "RANK only works with PARTITION BY"),
			choice("What does PARTITION BY do in a window function?",
				"Divides rows into groups for the function to operate on", "Filters rows from the result",
				"Sorts the final output", "Limits the number of rows returned"),
			func(*rand.Rand) Question {
				return Question{
					Type:           Fix,
					Prompt:         "Fix this window function (missing OVER clause):",
					Broken:         "SELECT employee, revenue, RANK() AS rnk FROM sales;",
					Solution:       "SELECT employee, revenue, RANK() OVER (ORDER BY revenue DESC) AS rnk FROM sales;",
					OrderSensitive: unordered(),
				}
			},
			func(*rand.Rand) Question {
				return Question{
					Type:           Fix,
					Prompt:         "Fix this window function (wrong ORDER BY placement):",
					Broken:         "SELECT employee, month, revenue, SUM(revenue) OVER (PARTITION BY employee) AS rt FROM sales ORDER BY month;",
					Solution:       "SELECT employee, month, revenue, SUM(revenue) OVER (PARTITION BY employee ORDER BY month) AS rt FROM sales;",
					OrderSensitive: unordered(),
				}
			},
		},
	}
}

func lessonBetween() Lesson {
	destinations := [][]string{
		{"Tokyo", "London"},
		{"Paris", "Berlin"},
		{"Sydney", "Tokyo"},
		{"London", "Paris", "Berlin"},
	}

	return Lesson{
		ID:    20,
		Title: "BETWEEN, IN & Column Aliases",
		Theme: "Travel: flights, prices, destinations",
		Schema: `CREATE TABLE flights (id INT, airline TEXT, origin TEXT, destination TEXT, price INT, duration_min INT, departure_date TEXT, stops INT);
INSERT INTO flights VALUES (1,'SkyAir','New York','London',450,420,'2024-06-15',0),(2,'OceanWings','New York','Tokyo',850,840,'2024-06-16',1),(3,'EuroJet','New York','Paris',520,480,'2024-06-15',0),(4,'SkyAir','Chicago','London',380,450,'2024-06-17',0),(5,'PacificLine','Los Angeles','Tokyo',780,720,'2024-06-18',0),(6,'EuroJet','Chicago','Paris',490,510,'2024-06-19',1),(7,'SkyAir','New York','Berlin',610,540,'2024-06-20',1),(8,'OceanWings','Los Angeles','Sydney',1200,1020,'2024-06-21',1),(9,'PacificLine','Chicago','Tokyo',920,900,'2024-06-22',2),(10,'EuroJet','New York','London',420,430,'2024-06-23',0),(11,'SkyAir','Los Angeles','Paris',680,660,'2024-06-24',1),(12,'OceanWings','New York','Sydney',1350,1080,'2024-06-25',2),(13,'PacificLine','Chicago','Berlin',590,570,'2024-06-26',1),(14,'SkyAir','Los Angeles','London',510,600,'2024-06-27',1),(15,'EuroJet','Chicago','Sydney',1150,1050,'2024-06-28',2);`,
		SchemaDisplay: "flights(id INT, airline TEXT, origin TEXT, destination TEXT, price INT, duration_min INT, departure_date TEXT, stops INT)",
		DefaultQuery:  "SELECT * FROM flights;",
		Exercises: []Exercise{
			{
				Instruction: "Find all flights with a price BETWEEN 200 AND 500. Show airline, destination, and price.",
				Hint:        "WHERE price BETWEEN 200 AND 500",
				Solution:    "SELECT airline, destination, price FROM flights WHERE price BETWEEN 200 AND 500",
			},
			{
				Instruction: "Find flights to Tokyo, Paris, or London using IN. Show airline, destination, and price.",
				Hint:        "WHERE destination IN ('Tokyo','Paris','London')",
				Solution:    "SELECT airline, destination, price FROM flights WHERE destination IN ('Tokyo','Paris','London')",
			},
			{
				Instruction: "Calculate the price per minute for each flight (price / duration_min), rounded to 2 decimal places. " +
					"Alias it as price_per_min. Show airline, destination, and price_per_min.",
				Hint:     "ROUND(1.0 * price / duration_min, 2) AS price_per_min",
				Solution: "SELECT airline, destination, ROUND(1.0 * price / duration_min, 2) AS price_per_min FROM flights",
			},
			{
				Instruction: "Find flights to destinations IN ('Tokyo','Paris') with a price BETWEEN 400 AND 800. Show airline, destination, and price.",
				Hint:        "Combine IN and BETWEEN in the WHERE clause",
				Solution:    "SELECT airline, destination, price FROM flights WHERE destination IN ('Tokyo','Paris') AND price BETWEEN 400 AND 800",
			},
		},
		Templates: []Template{
			func(r *rand.Rand) Question {
				lo, hi := Pick(r, 200, 300, 400), Pick(r, 600, 700, 800)
				return Question{
					Type:     Write,
					Prompt:   fmt.Sprintf("Find flights with price BETWEEN %d AND %d. Show airline, destination, and price.", lo, hi),
					Solution: fmt.Sprintf("SELECT airline, destination, price FROM flights WHERE price BETWEEN %d AND %d", lo, hi),
				}
			},
			func(r *rand.Rand) Question {
				list := quoteList(Pick(r, destinations...))
				return Question{
					Type:     Write,
					Prompt:   fmt.Sprintf("Find flights to destinations IN (%s). Show airline, destination, and price.", list),
					Solution: fmt.Sprintf("SELECT airline, destination, price FROM flights WHERE destination IN (%s)", list),
				}
			},
			func(r *rand.Rand) Question {
				stops := Pick(r, 0, 1)
				return Question{
					Type:     Write,
					Prompt:   fmt.Sprintf("Find flights with %d stops and price BETWEEN 400 AND 900. Show airline, destination, price, and stops.", stops),
					Solution: fmt.Sprintf("SELECT airline, destination, price, stops FROM flights WHERE stops = %d AND price BETWEEN 400 AND 900", stops),
				}
			},
			choice("Is BETWEEN inclusive or exclusive of the boundary values?",
				"Inclusive on both ends", "Exclusive on both ends", "Inclusive start, exclusive end", "Exclusive start, inclusive end"),
			choice("What does the AS keyword do in a SELECT?",
				"Creates an alias (custom name) for a column or expression", "Filters results", "Joins tables", "Sorts output"),
			fixQ("Fix this BETWEEN (wrong syntax):",
				"SELECT * FROM flights WHERE price BETWEEN 200, 500;",
				"SELECT * FROM flights WHERE price BETWEEN 200 AND 500;"),
			fixQ("Fix this IN clause (missing quotes around strings):",
				"SELECT * FROM flights WHERE destination IN (Tokyo, Paris, London);",
				"SELECT * FROM flights WHERE destination IN ('Tokyo', 'Paris', 'London');"),
		},
	}
}
